// Package textmatch provides the case-insensitive keyword and suffix matching
// used by policy checks.
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold NFC-normalizes s and applies Unicode case folding, so that two strings
// differing only in case or composition fold to the same value.
func Fold(s string) string {
	// A Caser carries state; build one per call so Fold is safe for
	// concurrent use.
	return cases.Fold().String(norm.NFC.String(s))
}

// ContainsAny reports whether s contains any of keywords, ignoring case.
// Empty keywords never match.
func ContainsAny(s string, keywords []string) bool {
	folded := Fold(s)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(folded, Fold(kw)) {
			return true
		}
	}
	return false
}

// HasAnySuffix reports whether s ends with any of suffixes, ignoring case.
// Empty suffixes never match.
func HasAnySuffix(s string, suffixes []string) bool {
	folded := Fold(s)
	for _, suffix := range suffixes {
		if suffix == "" {
			continue
		}
		if strings.HasSuffix(folded, Fold(suffix)) {
			return true
		}
	}
	return false
}
