// Package rule defines validation rules over a parsed manifest document and
// the composite rule that merges their reports.
package rule

import (
	"golang.org/x/sync/errgroup"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// Rule inspects a document and reports what it finds. A Rule never modifies
// the document and never depends on another rule's output.
type Rule interface {
	Validate(doc Document) domain.Report
}

// Func adapts an ordinary function to the Rule interface.
type Func func(doc Document) domain.Report

// Validate calls f(doc).
func (f Func) Validate(doc Document) domain.Report { return f(doc) }

// AllOfOption configures an AllOf.
type AllOfOption func(*AllOf)

// Concurrent runs the children of an AllOf in separate goroutines. The merged
// report is identical to a sequential run.
func Concurrent() AllOfOption {
	return func(a *AllOf) { a.concurrent = true }
}

// AllOf runs every child rule against the same document and merges their
// reports in registration order. A child reporting errors does not stop its
// siblings.
type AllOf struct {
	rules      []Rule
	concurrent bool
}

// NewAllOf creates an AllOf over rules, in the given order.
func NewAllOf(rules []Rule, opts ...AllOfOption) *AllOf {
	a := &AllOf{rules: append([]Rule(nil), rules...)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Len returns the number of child rules.
func (a *AllOf) Len() int { return len(a.rules) }

// Validate runs all children and returns their merged report.
func (a *AllOf) Validate(doc Document) domain.Report {
	reports := make([]domain.Report, len(a.rules))

	if a.concurrent {
		var g errgroup.Group
		for i, r := range a.rules {
			g.Go(func() error {
				reports[i] = r.Validate(doc)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, r := range a.rules {
			reports[i] = r.Validate(doc)
		}
	}

	return domain.MergeAll(reports...)
}
