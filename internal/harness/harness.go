// Package harness runs YAML-defined multi-week scenarios through the full
// weekly pipeline and ledger rollover, asserting on the rendered results.
// Scenarios live in testdata and double as executable documentation of the
// week-over-week behavior.
package harness

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/ledger"
	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/report"
	"github.com/districtops/atttrack/internal/testutil"
)

// RunScenario executes the scenario at path week by week against a fresh
// in-memory ledger and checks every expectation. When the scenario is
// golden, the final week's rendered report is compared against
// testdata/golden/<name>.golden.
func RunScenario(t *testing.T, path string) {
	t.Helper()

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	cfg := scenario.effectiveConfig()
	clock := testutil.NewFixedClock(scenario.startDate())
	store := ledger.NewMemStore(nil)
	led := ledger.New(store, ledger.WithNow(clock.Now))

	var final *engine.ResultSet
	for i, week := range scenario.Weeks {
		oneBack, twoBack, err := led.PriorWeeks()
		if err != nil {
			t.Fatalf("week %d: read prior weeks: %v", i+1, err)
		}

		p := &engine.Pipeline{Config: cfg, Today: clock.Now()}
		in := week.inputs()
		in.OneWeekBack = oneBack
		in.TwoWeeksBack = twoBack

		current, rs := p.Run(in)
		week.check(t, i+1, rs)

		if err := led.Rollover(current); err != nil {
			t.Fatalf("week %d: rollover: %v", i+1, err)
		}
		clock.AdvanceWeek()
		final = rs
	}

	if scenario.Golden {
		cols := scenario.GoldenColumns
		if len(cols) == 0 {
			cols = record.ResultColumns
		}
		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, scenario.Name, renderCSV(final, cols))
	}
}

func (w *Week) check(t *testing.T, week int, rs *engine.ResultSet) {
	t.Helper()
	if w.Expect == nil {
		return
	}

	if w.Expect.Count != nil && rs.Len() != *w.Expect.Count {
		t.Errorf("week %d: got %d results, want %d", week, rs.Len(), *w.Expect.Count)
	}
	for _, id := range w.Expect.Absent {
		if _, ok := rs.Get(id); ok {
			t.Errorf("week %d: student %d present, expected absent", week, id)
		}
	}
	for _, want := range w.Expect.Results {
		r, ok := rs.Get(want.StudentNumber)
		if !ok {
			t.Errorf("week %d: student %d missing from results", week, want.StudentNumber)
			continue
		}
		for col, expected := range want.Cells {
			if got := r.Cell(col); got != expected {
				t.Errorf("week %d: student %d %s = %q, want %q",
					week, want.StudentNumber, col, got, expected)
			}
		}
	}
}

func renderCSV(rs *engine.ResultSet, cols []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(cols)
	w.WriteAll(report.Rows(rs.All(), cols))
	return buf.Bytes()
}
