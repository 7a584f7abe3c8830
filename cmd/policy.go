package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/manifestlint-go/internal/domain"
	"github.com/eykd/manifestlint-go/internal/policy"
)

// PolicySource names where an effective policy came from.
type PolicySource struct {
	// File is the policy file path, or "" for the built-in policy.
	File string
}

// String returns the file path or "built-in".
func (s PolicySource) String() string {
	if s.File == "" {
		return "built-in"
	}
	return s.File
}

// PolicyProvider resolves the effective policy.
type PolicyProvider interface {
	Policy(ctx context.Context, file string) (domain.Policy, PolicySource, error)
}

// NewPolicyCmd creates the policy command group.
func NewPolicyCmd(provider PolicyProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect the validation policy",
	}
	cmd.AddCommand(newPolicyShowCmd(provider))
	return cmd
}

func newPolicyShowCmd(provider PolicyProvider) *cobra.Command {
	var policyFile string

	cmd := &cobra.Command{
		Use:          "show",
		Short:        "Print the effective policy as YAML",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, src, err := provider.Policy(cmd.Context(), policyFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", src)
			if err := policy.Encode(cmd.OutOrStdout(), p); err != nil {
				return &ContextError{Op: "policy show", Err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&policyFile, "policy", "", "Policy file overriding the configured one")

	return cmd
}
