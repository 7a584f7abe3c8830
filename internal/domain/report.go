package domain

// Report holds the findings of one validation run, partitioned by severity.
// Each sequence is in order of discovery.
type Report struct {
	Errors   []Code `json:"errors"`
	Warnings []Code `json:"warnings"`
	Infos    []Code `json:"infos"`
}

// Empty returns a report with no findings.
func Empty() Report {
	return Report{
		Errors:   []Code{},
		Warnings: []Code{},
		Infos:    []Code{},
	}
}

// WithError returns a report holding the single error c.
func WithError(c Code) Report {
	r := Empty()
	r.Errors = append(r.Errors, c)
	return r
}

// WithWarning returns a report holding the single warning c.
func WithWarning(c Code) Report {
	r := Empty()
	r.Warnings = append(r.Warnings, c)
	return r
}

// WithInfo returns a report holding the single info c.
func WithInfo(c Code) Report {
	r := Empty()
	r.Infos = append(r.Infos, c)
	return r
}

// Merge returns a new report whose sequences are a's followed by b's.
// Duplicates are kept. Neither input is modified.
func Merge(a, b Report) Report {
	return Report{
		Errors:   concat(a.Errors, b.Errors),
		Warnings: concat(a.Warnings, b.Warnings),
		Infos:    concat(a.Infos, b.Infos),
	}
}

// MergeAll folds Merge over reports in order.
func MergeAll(reports ...Report) Report {
	out := Empty()
	for _, r := range reports {
		out = Merge(out, r)
	}
	return out
}

// HasErrors reports whether r contains at least one error.
func (r Report) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether r contains at least one warning.
func (r Report) HasWarnings() bool { return len(r.Warnings) > 0 }

// Len returns the total number of findings.
func (r Report) Len() int {
	return len(r.Errors) + len(r.Warnings) + len(r.Infos)
}

func concat(a, b []Code) []Code {
	out := make([]Code, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
