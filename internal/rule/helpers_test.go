package rule

import (
	"bytes"
	"encoding/json"
	"slices"
	"testing"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// parseDoc decodes a JSON object literal the way the validator does.
func parseDoc(t *testing.T, src string) Document {
	t.Helper()
	dec := json.NewDecoder(bytes.NewReader([]byte(src)))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		t.Fatalf("decoding test manifest: %v\n%s", err, src)
	}
	return doc
}

func assertCodes(t *testing.T, kind string, got, want []domain.Code) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", kind, got, want)
	}
}

// reportCase is a table row shared by the field rule tests.
type reportCase struct {
	name         string
	manifest     string
	wantErrors   []domain.Code
	wantWarnings []domain.Code
}

func runReportCases(t *testing.T, r Rule, tests []reportCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Validate(parseDoc(t, tt.manifest))

			want := func(c []domain.Code) []domain.Code {
				if c == nil {
					return []domain.Code{}
				}
				return c
			}
			assertCodes(t, "errors", got.Errors, want(tt.wantErrors))
			assertCodes(t, "warnings", got.Warnings, want(tt.wantWarnings))
			if len(got.Infos) != 0 {
				t.Errorf("infos = %v, want none", got.Infos)
			}
		})
	}
}
