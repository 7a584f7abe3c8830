package validator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/eykd/manifestlint-go/internal/domain"
)

// ErrNoFileReader is returned by ValidateFiles when the engine was built
// without WithFileReader.
var ErrNoFileReader = errors.New("validator: no file reader configured")

// FileReader loads manifest bytes by path.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileResult is the outcome of validating one file. Err is set when the
// file could not be read; Report is then empty.
type FileResult struct {
	Path   string
	Report domain.Report
	Err    error
}

// Summary totals a batch of results.
type Summary struct {
	Files       int `json:"files"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
	FailedFiles int `json:"failed_files"`
	Unreadable  int `json:"unreadable"`
}

// ValidateFiles validates paths with at most the configured number of
// workers. Results are in input order. Once ctx is done no further file is
// read; those results carry the context error, which is also returned.
func (e *Engine) ValidateFiles(ctx context.Context, paths []string) ([]FileResult, error) {
	if e.reader == nil {
		return nil, ErrNoFileReader
	}

	results := make([]FileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(e.workers)

	for i, path := range paths {
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Report, results[i].Err = domain.Empty(), err
				return nil
			}
			data, err := e.reader.ReadFile(ctx, path)
			if err != nil {
				results[i].Report, results[i].Err = domain.Empty(), err
				return nil
			}
			e.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("validating file")
			results[i].Report = e.Validate(ctx, data)
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

// Summarize totals findings across results.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Unreadable++
			continue
		}
		s.Errors += len(r.Report.Errors)
		s.Warnings += len(r.Report.Warnings)
		if r.Report.HasErrors() {
			s.FailedFiles++
		}
	}
	return s
}
