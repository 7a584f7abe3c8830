// Package domain holds the finding codes, severities and reports produced by
// manifest validation.
package domain

import (
	"errors"
	"fmt"
)

// FindingSeverity indicates how severe a finding is.
type FindingSeverity string

const (
	// SeverityError indicates a finding that must be resolved.
	SeverityError FindingSeverity = "error"
	// SeverityWarning indicates a finding that should be reviewed.
	SeverityWarning FindingSeverity = "warning"
	// SeverityInfo indicates an informational note.
	SeverityInfo FindingSeverity = "info"
)

// Code identifies a finding. The set of codes is closed: values outside the
// constants below are never produced by validation.
type Code int

// Finding codes, grouped by the manifest field they describe.
const (
	NotValidJson Code = iota
	ManifestVersionInvalid

	NameObjectRequired
	ShortNameRequired
	ShortNameType
	ShortNameStaging
	ShortNameMicrosoft
	FullNameType
	FullNameStaging
	FullNameMicrosoft

	DescriptionObjectRequired
	ShortDescriptionRequired
	ShortDescriptionType
	ShortDescriptionCompetitor
	FullDescriptionRequired
	FullDescriptionType
	FullDescriptionCompetitor
	FullDescriptionContainsShortDescription

	ValidDomainsType
	ValidDomainsIsTunnelSite
	ValidDomainsIsWildcardHostingSite

	VersionRequired
	VersionType
	VersionMajorLessThanOne

	codeCount
)

type codeInfo struct {
	name     string
	wire     string
	severity FindingSeverity
}

var codeTable = [codeCount]codeInfo{
	NotValidJson:           {"NotValidJson", "not_valid_json", SeverityError},
	ManifestVersionInvalid: {"ManifestVersionInvalid", "manifest_version.invalid", SeverityError},

	NameObjectRequired: {"NameObjectRequired", "name.required", SeverityError},
	ShortNameRequired:  {"ShortNameRequired", "name.short.required", SeverityError},
	ShortNameType:      {"ShortNameType", "name.short.type", SeverityError},
	ShortNameStaging:   {"ShortNameStaging", "name.short.looks_like_staging", SeverityWarning},
	ShortNameMicrosoft: {"ShortNameMicrosoft", "name.short.microsoft", SeverityWarning},
	FullNameType:       {"FullNameType", "name.full.type", SeverityError},
	FullNameStaging:    {"FullNameStaging", "name.full.looks_like_staging", SeverityWarning},
	FullNameMicrosoft:  {"FullNameMicrosoft", "name.full.microsoft", SeverityWarning},

	DescriptionObjectRequired:               {"DescriptionObjectRequired", "description.required", SeverityError},
	ShortDescriptionRequired:                {"ShortDescriptionRequired", "description.short.required", SeverityError},
	ShortDescriptionType:                    {"ShortDescriptionType", "description.short.type", SeverityError},
	ShortDescriptionCompetitor:              {"ShortDescriptionCompetitor", "description.short.competitor_keyword", SeverityWarning},
	FullDescriptionRequired:                 {"FullDescriptionRequired", "description.full.required", SeverityError},
	FullDescriptionType:                     {"FullDescriptionType", "description.full.type", SeverityError},
	FullDescriptionCompetitor:               {"FullDescriptionCompetitor", "description.full.competitor_keyword", SeverityWarning},
	FullDescriptionContainsShortDescription: {"FullDescriptionContainsShortDescription", "description.full.contains_short", SeverityWarning},

	ValidDomainsType:                  {"ValidDomainsType", "validdomains.type", SeverityError},
	ValidDomainsIsTunnelSite:          {"ValidDomainsIsTunnelSite", "validdomains.is_tunnel_site", SeverityError},
	ValidDomainsIsWildcardHostingSite: {"ValidDomainsIsWildcardHostingSite", "validdomains.is_wildcard_hosting_site", SeverityError},

	VersionRequired:         {"VersionRequired", "version.required", SeverityError},
	VersionType:             {"VersionType", "version.type", SeverityError},
	VersionMajorLessThanOne: {"VersionMajorLessThanOne", "version.major_less_than_one", SeverityWarning},
}

// ErrCodeNotDecodable is returned when decoding a Code from text. Codes only
// flow out of the validator.
var ErrCodeNotDecodable = errors.New("finding codes cannot be decoded")

// Codes returns every defined code in definition order.
func Codes() []Code {
	codes := make([]Code, 0, codeCount)
	for c := Code(0); c < codeCount; c++ {
		codes = append(codes, c)
	}
	return codes
}

// Valid reports whether c is one of the defined codes.
func (c Code) Valid() bool {
	return c >= 0 && c < codeCount
}

// String returns the stable lowercase dotted form, e.g. "name.short.required".
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("code(%d)", int(c))
	}
	return codeTable[c].wire
}

// Name returns the identifier of the code, e.g. "ShortNameRequired".
func (c Code) Name() string {
	if !c.Valid() {
		return ""
	}
	return codeTable[c].name
}

// Severity returns the severity fixed for c at definition time.
func (c Code) Severity() FindingSeverity {
	if !c.Valid() {
		return ""
	}
	return codeTable[c].severity
}

// MarshalText encodes c as its dotted string.
func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("marshal finding code %d: undefined", int(c))
	}
	return []byte(codeTable[c].wire), nil
}

// UnmarshalText always fails; see ErrCodeNotDecodable.
func (c *Code) UnmarshalText([]byte) error {
	return ErrCodeNotDecodable
}
