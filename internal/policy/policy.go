// Package policy loads the word lists the field rules match against. A
// policy file is YAML; every list it names replaces the built-in list, and
// lists it omits keep their defaults.
package policy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// ErrInvalidPolicy is returned when a policy document is not valid YAML or
// does not match the policy schema.
var ErrInvalidPolicy = errors.New("invalid policy")

// ErrPolicyNotFound is returned by LoadFile when the file does not exist.
var ErrPolicyNotFound = errors.New("policy file not found")

const schemaURL = "policy.schema.json"

//go:embed policy.schema.json
var schemaSource []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// file is the on-disk shape of a policy. Pointer fields distinguish an
// absent list from an empty one.
type file struct {
	ManifestVersions   *[]string `yaml:"manifest_versions"`
	StagingKeywords    *[]string `yaml:"staging_keywords"`
	BrandKeywords      *[]string `yaml:"brand_keywords"`
	CompetitorKeywords *[]string `yaml:"competitor_keywords"`
	TunnelDomains      *[]string `yaml:"tunnel_domains"`
	HostingDomains     *[]string `yaml:"hosting_domains"`
}

// Default returns the built-in policy.
func Default() domain.Policy {
	return domain.DefaultPolicy()
}

// Load reads a YAML policy from r and overlays it onto Default.
func Load(r io.Reader) (domain.Policy, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("reading policy: %w", err)
	}
	return Parse(data)
}

// LoadFile reads the policy file at path.
func LoadFile(path string) (domain.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Policy{}, fmt.Errorf("%w: %s", ErrPolicyNotFound, path)
		}
		return domain.Policy{}, fmt.Errorf("reading policy %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates data and overlays it onto Default. An empty document
// yields the defaults unchanged.
func Parse(data []byte) (domain.Policy, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if raw == nil {
		return Default(), nil
	}
	if err := validate(raw); err != nil {
		return domain.Policy{}, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.Policy{}, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return f.overlay(Default()), nil
}

// validate checks a decoded YAML value against the policy schema. The value
// goes through JSON first so the validator sees JSON types only.
func validate(raw any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	var payload any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return nil
}

func (f file) overlay(p domain.Policy) domain.Policy {
	set := func(dst *[]string, src *[]string) {
		if src != nil {
			*dst = slices.Clone(*src)
			if *dst == nil {
				*dst = []string{}
			}
		}
	}
	set(&p.ManifestVersions, f.ManifestVersions)
	set(&p.StagingKeywords, f.StagingKeywords)
	set(&p.BrandKeywords, f.BrandKeywords)
	set(&p.CompetitorKeywords, f.CompetitorKeywords)
	set(&p.TunnelDomains, f.TunnelDomains)
	set(&p.HostingDomains, f.HostingDomains)
	return p
}

// encoded is the shape written by Encode; every list is always present.
type encoded struct {
	ManifestVersions   []string `yaml:"manifest_versions"`
	StagingKeywords    []string `yaml:"staging_keywords"`
	BrandKeywords      []string `yaml:"brand_keywords"`
	CompetitorKeywords []string `yaml:"competitor_keywords"`
	TunnelDomains      []string `yaml:"tunnel_domains"`
	HostingDomains     []string `yaml:"hosting_domains"`
}

// Encode writes p to w as a YAML policy document that Load accepts.
func Encode(w io.Writer, p domain.Policy) error {
	nonNil := func(s []string) []string {
		if s == nil {
			return []string{}
		}
		return s
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encoded{
		ManifestVersions:   nonNil(p.ManifestVersions),
		StagingKeywords:    nonNil(p.StagingKeywords),
		BrandKeywords:      nonNil(p.BrandKeywords),
		CompetitorKeywords: nonNil(p.CompetitorKeywords),
		TunnelDomains:      nonNil(p.TunnelDomains),
		HostingDomains:     nonNil(p.HostingDomains),
	}); err != nil {
		return fmt.Errorf("encoding policy: %w", err)
	}
	return enc.Close()
}
