package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/validator"
)

// ValidateRequest describes one validate run.
type ValidateRequest struct {
	Paths []string
	// PolicyFile overrides the configured policy file when set.
	PolicyFile string
	// Workers overrides the configured worker count when above zero.
	Workers int
}

// ValidateRunner defines the interface for validating manifest files.
type ValidateRunner interface {
	Validate(ctx context.Context, req ValidateRequest) ([]validator.FileResult, error)
}

// ReportWriter defines the interface for writing a report file.
type ReportWriter interface {
	WriteReport(ctx context.Context, path string, data []byte) error
}

// fileReportJSON is one entry of the JSON report.
type fileReportJSON struct {
	Path string `json:"path"`
	domain.Report
	Error string `json:"error,omitempty"`
}

// validateJSONResponse is the JSON output structure for the validate command.
type validateJSONResponse struct {
	Results []fileReportJSON  `json:"results"`
	Summary validator.Summary `json:"summary"`
}

func buildValidateResponse(results []validator.FileResult) validateJSONResponse {
	out := validateJSONResponse{
		Results: make([]fileReportJSON, len(results)),
		Summary: validator.Summarize(results),
	}
	for i, r := range results {
		entry := fileReportJSON{Path: r.Path, Report: r.Report}
		if entry.Report.Errors == nil {
			entry.Report = domain.Empty()
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		out.Results[i] = entry
	}
	return out
}

// formatValidateHuman writes one line per finding and a summary line to w.
func formatValidateHuman(w io.Writer, results []validator.FileResult, summary validator.Summary) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, group := range [][]domain.Code{r.Report.Errors, r.Report.Warnings, r.Report.Infos} {
			for _, c := range group {
				fmt.Fprintf(w, "%s [%s] %s\n", r.Path, c.Severity(), c)
			}
		}
	}
	fmt.Fprintf(w, "%d file(s), %d error(s), %d warning(s)\n", summary.Files, summary.Errors, summary.Warnings)
}

// readErrors collects the per-file read failures in results.
func readErrors(results []validator.FileResult) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d file(s) could not be read: %w", len(errs), errors.Join(errs...))
}

type validateOptions struct {
	json        bool
	output      string
	policyFile  string
	concurrency int
}

// runValidateAndReport validates the files, prints the results and writes
// the optional report file. Read failures take precedence over findings.
func runValidateAndReport(cmd *cobra.Command, runner ValidateRunner, writer ReportWriter, paths []string, opts validateOptions) error {
	ctx := cmd.Context()
	results, err := runner.Validate(ctx, ValidateRequest{
		Paths:      paths,
		PolicyFile: opts.policyFile,
		Workers:    opts.concurrency,
	})
	if err != nil {
		return err
	}

	resp := buildValidateResponse(results)

	if opts.output != "" {
		data, err := marshalReport(resp)
		if err != nil {
			return err
		}
		if err := writer.WriteReport(ctx, opts.output, data); err != nil {
			return &ContextError{Op: "write report", Path: opts.output, Err: err}
		}
	}

	if opts.json {
		writeJSON(cmd.OutOrStdout(), resp)
	} else {
		formatValidateHuman(cmd.OutOrStdout(), results, resp.Summary)
	}

	if err := readErrors(results); err != nil {
		return err
	}
	if resp.Summary.FailedFiles > 0 {
		return &FindingsDetectedError{
			Files:    resp.Summary.FailedFiles,
			Errors:   resp.Summary.Errors,
			Warnings: resp.Summary.Warnings,
		}
	}
	return nil
}

// NewValidateCmd creates the validate command with the given runner and
// report writer.
func NewValidateCmd(runner ValidateRunner, writer ReportWriter) *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate manifest files",
		Long: "Validate one or more manifest files. A path of - reads standard input.\n" +
			"Exits 0 when no file has errors, 2 when any file has errors, 1 on failure.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.concurrency < 0 {
				return fmt.Errorf("--concurrency must not be negative, got %d", opts.concurrency)
			}
			o := opts
			o.json = o.json || GetJSON()
			return runValidateAndReport(cmd, runner, writer, args, o)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Output results as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also write the JSON report to this file")
	cmd.Flags().StringVar(&opts.policyFile, "policy", "", "Policy file overriding the configured one")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Files validated at once (default from config)")

	return cmd
}
