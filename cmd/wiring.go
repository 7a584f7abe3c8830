package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/manifestlint-go/internal/fs"
)

// BuildCommandTree assembles the root command and its subcommands around
// the given collaborators.
func BuildCommandTree(runner ValidateRunner, writer ReportWriter, policies PolicyProvider) *cobra.Command {
	root := NewRootCmd()
	root.AddCommand(
		NewValidateCmd(runner, writer),
		NewPolicyCmd(policies),
		NewVersionCmd(),
	)
	return root
}

// NewApp builds the command tree wired to the real config, policy and
// filesystem adapters. Logs go to stderr; stdin backs the "-" path.
func NewApp(stdin io.Reader, stderr io.Writer) *cobra.Command {
	env := newEnvironment(stdin, stderr)
	return BuildCommandTree(
		&validateAdapter{env: env},
		&fs.ReportWriter{},
		&policyAdapter{env: env},
	)
}
