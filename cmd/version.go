package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the mlint version, set at build time with
// -ldflags "-X github.com/eykd/manifestlint-go/cmd.Version=...".
var Version = "dev"

type versionJSONResponse struct {
	Version string `json:"version"`
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the mlint version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonFlag || GetJSON() {
				writeJSON(cmd.OutOrStdout(), versionJSONResponse{Version: Version})
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mlint %s\n", Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output as JSON")

	return cmd
}
