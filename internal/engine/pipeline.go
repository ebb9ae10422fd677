package engine

import (
	"log/slog"
	"time"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// Inputs carries every table one weekly run consumes: the mapped raw
// extracts plus the two prior-week snapshots read from the pre-rollover
// ledger.
type Inputs struct {
	Attendance   []tabular.Row
	Demographics []tabular.Row
	Probation    []tabular.Row
	Med          []tabular.Row
	Medp         []tabular.Row

	OneWeekBack  []record.SnapshotRecord
	TwoWeeksBack []record.SnapshotRecord
}

// Pipeline runs the weekly evaluation stages in their fixed order.
type Pipeline struct {
	Config *config.Config

	// Today anchors the age computation; tests pin it for determinism.
	Today time.Time
}

// New returns a Pipeline for the given configuration with Today set to the
// wall clock.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{Config: cfg, Today: time.Now()}
}

// Run executes the full weekly pipeline and returns the current-week
// consolidated snapshot (the caller feeds it to the ledger rollover) and
// the finished ResultSet.
//
// Stage order is a contract: the two-weeks comparison reads fields the
// one-week comparison wrote, and categorization reads the merged percents.
func (p *Pipeline) Run(in Inputs) ([]record.SnapshotRecord, *ResultSet) {
	threshold := p.Config.FlagThreshold

	current := Consolidate(in.Attendance)
	slog.Info("consolidated current week", "students", len(current))

	rs := PrimeResults(current, threshold)
	CompareOneWeekBack(current, in.OneWeekBack, rs, threshold)
	CompareTwoWeeksBack(current, in.TwoWeeksBack, rs, threshold)
	slog.Info("comparisons complete",
		"students", rs.Len(),
		"one_week_back", len(in.OneWeekBack),
		"two_weeks_back", len(in.TwoWeeksBack),
	)

	MergeDemographics(rs, in.Demographics, p.Today)
	MergeProbation(rs, in.Probation)
	MergeMedicalDays(rs, in.Med, in.Medp, p.Config.TotalSchoolDays)

	MapSchoolCodes(rs, p.Config)
	before := rs.Len()
	rs = FilterUnknownSchools(rs)
	if dropped := before - rs.Len(); dropped > 0 {
		slog.Info("dropped students with unresolved residence school", "count", dropped)
	}

	Categorize(rs)
	return current, rs
}
