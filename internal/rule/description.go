package rule

import (
	"slices"
	"strings"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/textmatch"
)

// DescriptionRule checks the description object. Both description.short and
// description.full are required; each is matched against competitor
// keywords, and a full description that repeats the short one is flagged.
type DescriptionRule struct {
	competitors []string
}

// NewDescriptionRule creates a DescriptionRule using competitorKeywords.
func NewDescriptionRule(competitorKeywords []string) *DescriptionRule {
	return &DescriptionRule{competitors: slices.Clone(competitorKeywords)}
}

type descriptionCodes struct {
	required   domain.Code
	typ        domain.Code
	competitor domain.Code
}

var (
	shortDescriptionCodes = descriptionCodes{domain.ShortDescriptionRequired, domain.ShortDescriptionType, domain.ShortDescriptionCompetitor}
	fullDescriptionCodes  = descriptionCodes{domain.FullDescriptionRequired, domain.FullDescriptionType, domain.FullDescriptionCompetitor}
)

// Validate implements Rule.
func (r *DescriptionRule) Validate(doc Document) domain.Report {
	v, _ := doc.Lookup("description")
	desc, ok := asObject(v)
	if !ok {
		return domain.WithError(domain.DescriptionObjectRequired)
	}

	short, shortReport, shortOK := r.checkField(desc, "short", shortDescriptionCodes)
	full, fullReport, fullOK := r.checkField(desc, "full", fullDescriptionCodes)
	report := domain.Merge(shortReport, fullReport)

	// Containment is case-sensitive.
	if shortOK && fullOK && strings.Contains(full, short) {
		report = domain.Merge(report, domain.WithWarning(domain.FullDescriptionContainsShortDescription))
	}
	return report
}

// checkField validates desc[key] and returns its text when it is a
// non-empty string.
func (r *DescriptionRule) checkField(desc map[string]any, key string, codes descriptionCodes) (string, domain.Report, bool) {
	v, present := desc[key]
	if !present {
		return "", domain.WithError(codes.required), false
	}
	s, ok := asNonEmptyString(v)
	if !ok {
		return "", domain.WithError(codes.typ), false
	}
	if textmatch.ContainsAny(s, r.competitors) {
		return s, domain.WithWarning(codes.competitor), true
	}
	return s, domain.Empty(), true
}
