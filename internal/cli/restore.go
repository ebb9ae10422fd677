package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/districtops/atttrack/internal/ledger"
)

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Ledger string
}

// RestoreSummary is the payload printed after a successful restore.
type RestoreSummary struct {
	Ledger   string `json:"ledger"`
	Restored string `json:"restored_from"`
}

func (s RestoreSummary) String() string {
	return fmt.Sprintf("Ledger %s restored from %s", s.Ledger, s.Restored)
}

// NewRestoreCommand creates the ledger restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the ledger from its most recent backup",
		Long: `Restore the rolling ledger from the newest timestamped backup
sitting next to it. Use after a run reports the ledger as corrupt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the rolling ledger CSV (required)")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runRestore(opts *RestoreOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	backup, err := ledger.Restore(opts.Ledger)
	if err != nil {
		var lerr *ledger.Error
		if errors.As(err, &lerr) && lerr.Code == ledger.CodeNoBackup {
			return WrapExitError(ExitFailure, "no backup found next to the ledger", err)
		}
		return WrapExitError(ExitFailure, "failed to restore ledger", err)
	}
	slog.Info("ledger restored", "ledger", opts.Ledger, "backup", backup)

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(RestoreSummary{Ledger: opts.Ledger, Restored: backup})
}
