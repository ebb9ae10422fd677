package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/ledger"
	"github.com/districtops/atttrack/internal/report"
	"github.com/districtops/atttrack/internal/tabular"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config       string
	Ledger       string
	Attendance   string
	Demographics string
	Probation    string
	Med          string
	Medp         string
	Out          string
	DryRun       bool

	// Now allows overriding the clock (for testing). Nil means time.Now.
	Now func() time.Time
}

// RunSummary is the payload printed after a successful weekly run.
type RunSummary struct {
	Students     int    `json:"students"`
	OneWeekBack  int    `json:"one_week_back"`
	TwoWeeksBack int    `json:"two_weeks_back"`
	Output       string `json:"output"`
	DryRun       bool   `json:"dry_run"`
}

func (s RunSummary) String() string {
	mutated := "ledger rolled over"
	if s.DryRun {
		mutated = "dry run, ledger untouched"
	}
	return fmt.Sprintf("Weekly run complete: %d students, reports in %s (%s)",
		s.Students, s.Output, mutated)
}

// NewRunCommand creates the weekly run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the weekly attendance evaluation",
		Long: `Run one weekly attendance evaluation.

The current attendance extract is consolidated, compared against the one-
and two-week-back snapshots in the ledger, enriched with the demographic,
probation, and medical extracts, and written out as building and district
reports. Afterwards the ledger rolls forward one week, taking a timestamped
backup first.

Example:
  atttrack run --config district.yaml --ledger base.csv \
    --attendance week.csv --demographics demo.csv --out ./reports`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeekly(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to district config YAML (required)")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to the rolling ledger CSV (required)")
	cmd.Flags().StringVar(&opts.Attendance, "attendance", "", "path to the weekly attendance extract (required)")
	cmd.Flags().StringVar(&opts.Demographics, "demographics", "", "path to the demographic extract")
	cmd.Flags().StringVar(&opts.Probation, "probation", "", "path to the probation extract")
	cmd.Flags().StringVar(&opts.Med, "med", "", "path to the full-day medical extract")
	cmd.Flags().StringVar(&opts.Medp, "medp", "", "path to the partial-day medical extract")
	cmd.Flags().StringVar(&opts.Out, "out", ".", "output directory for reports")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "evaluate and report without mutating the ledger")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("ledger")
	_ = cmd.MarkFlagRequired("attendance")

	return cmd
}

func runWeekly(opts *RunOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)
	slog.Info("weekly run starting", "attendance", opts.Attendance, "dry_run", opts.DryRun)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	attendance, err := tabular.ReadTableStrict(opts.Attendance, cfg.Mappings.Attendance)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read attendance extract", err)
	}

	in := engine.Inputs{
		Attendance:   attendance,
		Demographics: readOptional(opts.Demographics, cfg.Mappings.Demographics),
		Probation:    readOptional(opts.Probation, cfg.Mappings.Probation),
		Med:          readOptional(opts.Med, cfg.Mappings.Med),
		Medp:         readOptional(opts.Medp, cfg.Mappings.Medp),
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	led := ledger.New(ledger.NewFileStore(opts.Ledger), ledger.WithNow(now))

	in.OneWeekBack, in.TwoWeeksBack, err = led.PriorWeeks()
	if err != nil {
		if ledger.IsCorrupt(err) {
			return WrapExitError(ExitFailure,
				"ledger is corrupt, run 'atttrack restore' to recover the latest backup", err)
		}
		return WrapExitError(ExitFailure, "failed to read ledger", err)
	}

	p := &engine.Pipeline{Config: cfg, Today: now()}
	current, rs := p.Run(in)

	w := report.New(cfg, opts.Out)
	if err := w.ClearOldCSVs(); err != nil {
		return WrapExitError(ExitFailure, "failed to clear stale reports", err)
	}
	if err := w.WriteBuildingReports(rs); err != nil {
		return WrapExitError(ExitFailure, "failed to write building reports", err)
	}
	if err := w.WriteAltHRReport(rs); err != nil {
		return WrapExitError(ExitFailure, "failed to write alt and HR report", err)
	}
	if err := w.WriteFinalReport(rs); err != nil {
		return WrapExitError(ExitFailure, "failed to write final report", err)
	}

	if opts.DryRun {
		slog.Info("dry run, skipping ledger rollover")
	} else if err := led.Rollover(current); err != nil {
		return WrapExitError(ExitFailure, "failed to roll the ledger forward", err)
	}
	slog.Info("weekly run complete", "students", rs.Len())

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(RunSummary{
		Students:     rs.Len(),
		OneWeekBack:  len(in.OneWeekBack),
		TwoWeeksBack: len(in.TwoWeeksBack),
		Output:       opts.Out,
		DryRun:       opts.DryRun,
	})
}

// readOptional reads an extract that may not be supplied this week. A
// missing path means no data; read problems warn and yield no rows.
func readOptional(path string, mapping map[string]string) []tabular.Row {
	if path == "" {
		return nil
	}
	return tabular.ReadTable(path, mapping)
}
