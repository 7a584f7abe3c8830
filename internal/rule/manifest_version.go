package rule

import (
	"slices"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// ManifestVersionRule checks manifestVersion against an allowed set. Missing,
// mistyped and unknown values all report ManifestVersionInvalid.
type ManifestVersionRule struct {
	allowed []string
}

// NewManifestVersionRule creates a ManifestVersionRule accepting allowed.
func NewManifestVersionRule(allowed []string) *ManifestVersionRule {
	return &ManifestVersionRule{allowed: slices.Clone(allowed)}
}

// Validate implements Rule.
func (r *ManifestVersionRule) Validate(doc Document) domain.Report {
	v, _ := doc.Lookup("manifestVersion")
	s, ok := v.(string)
	if !ok || !slices.Contains(r.allowed, s) {
		return domain.WithError(domain.ManifestVersionInvalid)
	}
	return domain.Empty()
}
