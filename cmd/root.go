// Package cmd contains the CLI commands for the mlint application.
package cmd

import (
	"github.com/spf13/cobra"
)

// Global flag state, bound by NewRootCmd.
var (
	verbose    bool
	jsonOutput bool
	configFile string
	logLevel   string
	logFormat  string
)

// GetVerbose returns the current verbose flag state.
// This is used by other packages to check if debug logging is enabled.
func GetVerbose() bool {
	return verbose
}

// GetJSON reports whether --json was given on the root command.
func GetJSON() bool {
	return jsonOutput
}

// GetConfigFile returns the --config flag value.
func GetConfigFile() string {
	return configFile
}

// GetLogLevel returns the --log-level flag value, or "" when unset.
func GetLogLevel() string {
	return logLevel
}

// GetLogFormat returns the --log-format flag value, or "" when unset.
func GetLogFormat() string {
	return logFormat
}

// NewRootCmd creates a new root command instance.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mlint",
		Short:         "Validate app manifests against structural and policy rules",
		Long:          "mlint checks app manifest JSON files for missing or mistyped fields and for policy problems such as reserved brand names, competitor names and tunnelling domains.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Add persistent flags (available to all subcommands)
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	pf.BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	pf.StringVar(&configFile, "config", "", "Config file (default: ./mlint.yaml or the user config dir)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: pretty or json")

	return cmd
}
