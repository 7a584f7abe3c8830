package domain

import "slices"

// Policy is the configuration data the field rules match against. Every
// list is read-only once handed to a validator.
type Policy struct {
	// ManifestVersions are the accepted values of manifestVersion.
	ManifestVersions []string
	// StagingKeywords mark names that look like a pre-release build.
	StagingKeywords []string
	// BrandKeywords mark names that borrow a reserved brand.
	BrandKeywords []string
	// CompetitorKeywords mark descriptions that name a competing product.
	CompetitorKeywords []string
	// TunnelDomains are suffixes of tunnelling services.
	TunnelDomains []string
	// HostingDomains are fragments of shared hosting providers, checked on
	// wildcard domains only.
	HostingDomains []string
}

// DefaultPolicy returns the built-in policy lists.
func DefaultPolicy() Policy {
	return Policy{
		ManifestVersions: []string{"1.0", "1.2", "1.3"},
		StagingKeywords:  []string{"staging", "stg", "stag", "prod"},
		BrandKeywords:    []string{"microsoft", "teams", "microsoft teams"},
		CompetitorKeywords: []string{
			"slack", "workplace", "workplace by facebook", "flock", "stride",
			"hipchat", "hangouts meet", "g suite", "gsuite",
		},
		TunnelDomains: []string{"ngrok.io", "openport.io", "portmap.io", "fwd.wf"},
		HostingDomains: []string{
			"amazonaws.com", "appspot.com", "azurewebsites.net", "cloudapp.net",
			"dialogflow.com", "glitch.me", "heroku.com", "onmicrosoft.com",
			"recast.ai", "sharepoint.com",
		},
	}
}

// Clone returns a deep copy of p.
func (p Policy) Clone() Policy {
	return Policy{
		ManifestVersions:   slices.Clone(p.ManifestVersions),
		StagingKeywords:    slices.Clone(p.StagingKeywords),
		BrandKeywords:      slices.Clone(p.BrandKeywords),
		CompetitorKeywords: slices.Clone(p.CompetitorKeywords),
		TunnelDomains:      slices.Clone(p.TunnelDomains),
		HostingDomains:     slices.Clone(p.HostingDomains),
	}
}
