package rule

import (
	"slices"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/textmatch"
)

// NameRule checks the name object: name.short is required, name.full is
// optional, and both are matched against staging and brand keywords.
type NameRule struct {
	staging []string
	brand   []string
}

// NewNameRule creates a NameRule using the given keyword lists.
func NewNameRule(stagingKeywords, brandKeywords []string) *NameRule {
	return &NameRule{
		staging: slices.Clone(stagingKeywords),
		brand:   slices.Clone(brandKeywords),
	}
}

// nameCodes groups the codes reported for one of the name fields.
type nameCodes struct {
	typ     domain.Code
	staging domain.Code
	brand   domain.Code
}

var (
	shortNameCodes = nameCodes{domain.ShortNameType, domain.ShortNameStaging, domain.ShortNameMicrosoft}
	fullNameCodes  = nameCodes{domain.FullNameType, domain.FullNameStaging, domain.FullNameMicrosoft}
)

// Validate implements Rule.
func (r *NameRule) Validate(doc Document) domain.Report {
	v, _ := doc.Lookup("name")
	name, ok := asObject(v)
	if !ok {
		return domain.WithError(domain.NameObjectRequired)
	}

	report := domain.Empty()

	if short, present := name["short"]; present {
		report = domain.Merge(report, r.checkField(short, shortNameCodes))
	} else {
		report = domain.Merge(report, domain.WithError(domain.ShortNameRequired))
	}

	if full, present := name["full"]; present {
		report = domain.Merge(report, r.checkField(full, fullNameCodes))
	}

	return report
}

func (r *NameRule) checkField(v any, codes nameCodes) domain.Report {
	s, ok := asNonEmptyString(v)
	if !ok {
		return domain.WithError(codes.typ)
	}

	report := domain.Empty()
	if textmatch.ContainsAny(s, r.staging) {
		report = domain.Merge(report, domain.WithWarning(codes.staging))
	}
	if textmatch.ContainsAny(s, r.brand) {
		report = domain.Merge(report, domain.WithWarning(codes.brand))
	}
	return report
}
