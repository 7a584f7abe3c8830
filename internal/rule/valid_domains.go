package rule

import (
	"slices"
	"strings"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/textmatch"
)

// ValidDomainsRule checks the optional validDomains array. A type problem
// suppresses the policy checks; each policy error is reported at most once
// however many entries match.
type ValidDomainsRule struct {
	tunnels []string
	hosting []string
}

// NewValidDomainsRule creates a ValidDomainsRule. tunnelSuffixes are matched
// at the end of each domain; hostingFragments anywhere inside a wildcard
// domain.
func NewValidDomainsRule(tunnelSuffixes, hostingFragments []string) *ValidDomainsRule {
	return &ValidDomainsRule{
		tunnels: slices.Clone(tunnelSuffixes),
		hosting: slices.Clone(hostingFragments),
	}
}

// Validate implements Rule.
func (r *ValidDomainsRule) Validate(doc Document) domain.Report {
	v, present := doc.Lookup("validDomains")
	if !present {
		return domain.Empty()
	}

	domains, ok := stringArray(v)
	if !ok {
		return domain.WithError(domain.ValidDomainsType)
	}

	report := domain.Empty()
	if slices.ContainsFunc(domains, r.isTunnelSite) {
		report = domain.Merge(report, domain.WithError(domain.ValidDomainsIsTunnelSite))
	}
	if slices.ContainsFunc(domains, r.isWildcardHostingSite) {
		report = domain.Merge(report, domain.WithError(domain.ValidDomainsIsWildcardHostingSite))
	}
	return report
}

func (r *ValidDomainsRule) isTunnelSite(d string) bool {
	return textmatch.HasAnySuffix(d, r.tunnels)
}

func (r *ValidDomainsRule) isWildcardHostingSite(d string) bool {
	if !strings.Contains(d, "*") {
		return false
	}
	return textmatch.ContainsAny(d, r.hosting)
}

// stringArray returns v as a slice of non-empty strings.
func stringArray(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := asNonEmptyString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
