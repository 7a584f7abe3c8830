package rule

// Document is a parsed manifest: a JSON object decoded into map[string]any,
// []any, string, json.Number, bool and nil values. Rules treat it as
// read-only.
type Document map[string]any

// Lookup returns the value stored under key. A key holding JSON null is
// present with a nil value.
func (d Document) Lookup(key string) (any, bool) {
	v, ok := d[key]
	return v, ok
}

// asObject returns v as a JSON object.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

// asNonEmptyString returns v as a string if it is one and is not empty.
func asNonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}
