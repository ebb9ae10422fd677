package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/report"
	"github.com/districtops/atttrack/internal/tabular"
)

// SemesterOptions holds flags for the semester command.
type SemesterOptions struct {
	*RootOptions
	Config     string
	Attendance string
	Med        string
	Medp       string
	Out        string
}

// SemesterSummary is the payload printed after a successful semester run.
type SemesterSummary struct {
	Students int    `json:"students"`
	Skipped  int    `json:"skipped"`
	Output   string `json:"output"`
}

func (s SemesterSummary) String() string {
	return fmt.Sprintf("Semester report complete: %d students, %d skipped, reports in %s",
		s.Students, s.Skipped, s.Output)
}

// NewSemesterCommand creates the semester report command.
func NewSemesterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SemesterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "semester",
		Short: "Generate the semester-to-date adjusted attendance reports",
		Long: `Generate the semester-to-date attendance view.

The year-to-date attendance extract is consolidated, medical-excuse days
from the configured semester start onward are folded into a best-case
percentage, and one report folder is written per attending school.
Students whose school code cannot be resolved land in Skipped_Records.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSemester(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to district config YAML (required)")
	cmd.Flags().StringVar(&opts.Attendance, "attendance", "", "path to the year-to-date attendance extract (required)")
	cmd.Flags().StringVar(&opts.Med, "med", "", "path to the full-day medical extract")
	cmd.Flags().StringVar(&opts.Medp, "medp", "", "path to the partial-day medical extract")
	cmd.Flags().StringVar(&opts.Out, "out", ".", "output directory for reports")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("attendance")

	return cmd
}

func runSemester(opts *SemesterOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	start, err := cfg.SemesterStartDate()
	if err != nil {
		return WrapExitError(ExitCommandError, "semester start not configured", err)
	}
	if cfg.TotalSemesterDays == 0 {
		return NewExitError(ExitCommandError, "total_semester_days must be configured for semester reports")
	}

	attendance, err := tabular.ReadTableStrict(opts.Attendance, cfg.Mappings.Attendance)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read attendance extract", err)
	}
	med := readOptional(opts.Med, cfg.Mappings.Med)
	medp := readOptional(opts.Medp, cfg.Mappings.Medp)

	p := engine.New(cfg)
	results, skipped := p.SemesterResults(attendance, med, medp, start)

	w := report.New(cfg, opts.Out)
	if err := w.WriteSemesterReports(results, skipped); err != nil {
		return WrapExitError(ExitFailure, "failed to write semester reports", err)
	}
	slog.Info("semester run complete", "students", results.Len(), "skipped", skipped.Len())

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(SemesterSummary{
		Students: results.Len(),
		Skipped:  skipped.Len(),
		Output:   opts.Out,
	})
}
