package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/districtops/atttrack/internal/config"
)

// NewCheckConfigCommand creates the config validation command.
func NewCheckConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkconfig <config.yaml>",
		Short: "Validate a district config against the schema",
		Long: `Validate a district configuration file without running anything.

The file is checked against the embedded schema; violations are reported
with their position in the document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckConfig(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCheckConfig(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout(), Verbose: rootOpts.Verbose}

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read config", err)
	}
	if err := config.Validate(data); err != nil {
		formatter.Error("CONFIG_INVALID", err.Error(), nil)
		return NewExitError(ExitFailure, fmt.Sprintf("config %s is invalid", path))
	}
	return formatter.Success(fmt.Sprintf("Config %s is valid", path))
}
