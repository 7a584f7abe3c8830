// Package validator is the manifest validation engine. It parses raw bytes
// into a document and runs the composite of all field rules over it.
package validator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/rule"
)

var (
	// ErrNotObject is returned by Parse when the top-level value is not a
	// JSON object.
	ErrNotObject = errors.New("manifest is not a JSON object")
	// ErrTrailingData is returned by Parse when input continues after the
	// first JSON value.
	ErrTrailingData = errors.New("unexpected data after manifest")
)

// DefaultWorkers is the number of files ValidateFiles validates at once
// when no WithWorkers option is given.
const DefaultWorkers = 4

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-run debug lines.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithWorkers sets how many files ValidateFiles validates concurrently.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = max(n, 1) }
}

// WithConcurrentRules runs the field rules of each document in parallel.
func WithConcurrentRules() Option {
	return func(e *Engine) { e.concurrentRules = true }
}

// WithFileReader sets the reader ValidateFiles loads manifests through.
func WithFileReader(r FileReader) Option {
	return func(e *Engine) { e.reader = r }
}

// Engine validates manifests against a fixed policy. An Engine holds no
// per-run state and is safe for concurrent use.
type Engine struct {
	rules           *rule.AllOf
	log             zerolog.Logger
	workers         int
	concurrentRules bool
	reader          FileReader
}

// New creates an Engine whose rules are configured from p.
func New(p domain.Policy, opts ...Option) *Engine {
	e := &Engine{
		log:     zerolog.Nop(),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}

	var ruleOpts []rule.AllOfOption
	if e.concurrentRules {
		ruleOpts = append(ruleOpts, rule.Concurrent())
	}
	e.rules = rule.NewAllOf(Rules(p), ruleOpts...)
	return e
}

// Rules returns the field rules configured from p, in the order their
// findings appear in a report.
func Rules(p domain.Policy) []rule.Rule {
	return []rule.Rule{
		rule.NewManifestVersionRule(p.ManifestVersions),
		rule.NewNameRule(p.StagingKeywords, p.BrandKeywords),
		rule.NewDescriptionRule(p.CompetitorKeywords),
		rule.NewValidDomainsRule(p.TunnelDomains, p.HostingDomains),
		rule.NewVersionRule(),
	}
}

// Validate parses raw and runs every rule over it. Input that is not a
// single JSON object yields a report holding only NotValidJson.
func (e *Engine) Validate(ctx context.Context, raw []byte) domain.Report {
	runID := uuid.NewString()

	doc, err := Parse(raw)
	if err != nil {
		e.log.Debug().Ctx(ctx).
			Str("run_id", runID).
			Err(err).
			Msg("manifest rejected before rules ran")
		return domain.WithError(domain.NotValidJson)
	}

	report := e.rules.Validate(doc)
	e.log.Debug().Ctx(ctx).
		Str("run_id", runID).
		Int("rules", e.rules.Len()).
		Int("errors", len(report.Errors)).
		Int("warnings", len(report.Warnings)).
		Int("infos", len(report.Infos)).
		Msg("manifest validated")
	return report
}

// Parse decodes raw as exactly one JSON object. Numbers are kept as
// json.Number. Duplicate keys keep the last value.
func Parse(raw []byte) (rule.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return rule.Document(obj), nil
}
