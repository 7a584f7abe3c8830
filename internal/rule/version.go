package rule

import (
	"strconv"
	"strings"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// VersionRule checks the app version. It reports at most one finding: a
// missing version, a version that is not a dotted numeric string, or a
// major component below 1.
type VersionRule struct{}

// NewVersionRule creates a VersionRule.
func NewVersionRule() *VersionRule { return &VersionRule{} }

// Validate implements Rule.
func (VersionRule) Validate(doc Document) domain.Report {
	v, present := doc.Lookup("version")
	if !present {
		return domain.WithError(domain.VersionRequired)
	}
	s, ok := asNonEmptyString(v)
	if !ok {
		return domain.WithError(domain.VersionType)
	}
	major, ok := ParseVersion(s)
	if !ok {
		return domain.WithError(domain.VersionType)
	}
	if major < 1 {
		return domain.WithWarning(domain.VersionMajorLessThanOne)
	}
	return domain.Empty()
}

// ParseVersion parses major.minor[.patch[.build]] where every component is a
// non-negative decimal integer that fits in 31 bits, and returns the major
// component.
func ParseVersion(s string) (int, bool) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return 0, false
	}

	major := 0
	for i, p := range parts {
		if p == "" || strings.TrimLeft(p, "0123456789") != "" {
			return 0, false
		}
		n, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return 0, false
		}
		if i == 0 {
			major = int(n)
		}
	}
	return major, true
}
