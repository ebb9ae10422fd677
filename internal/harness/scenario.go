package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/tabular"
)

// Scenario defines a multi-week conformance scenario: a district config,
// a starting date, and a sequence of weekly inputs with expected results.
// Weeks execute in order against one shared ledger, so the scenario
// exercises the rollover and comparison behavior across real week
// boundaries.
type Scenario struct {
	// Name uniquely identifies this scenario; golden output uses it as
	// the fixture name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Today is the date of the first weekly run (YYYY-MM-DD). Each
	// subsequent week advances it by seven days.
	Today string `yaml:"today"`

	// Config is the inline district configuration for the run.
	Config config.Config `yaml:"config"`

	// Weeks lists the weekly runs in order.
	Weeks []Week `yaml:"weeks"`

	// Golden, when true, compares the final week's rendered report
	// against a golden fixture named after the scenario.
	Golden bool `yaml:"golden,omitempty"`

	// GoldenColumns narrows the golden report to these columns. Empty
	// means the full default column set.
	GoldenColumns []string `yaml:"golden_columns,omitempty"`
}

// Week is one weekly run: the mapped input tables plus expectations
// against the finished result set.
type Week struct {
	Attendance   []map[string]string `yaml:"attendance"`
	Demographics []map[string]string `yaml:"demographics,omitempty"`
	Probation    []map[string]string `yaml:"probation,omitempty"`
	Med          []map[string]string `yaml:"med,omitempty"`
	Medp         []map[string]string `yaml:"medp,omitempty"`

	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect validates a week's result set.
type Expect struct {
	// Count is the expected number of results, when set.
	Count *int `yaml:"count,omitempty"`

	// Absent lists student numbers that must not appear.
	Absent []int64 `yaml:"absent,omitempty"`

	// Results holds per-student cell expectations. Subset match: only
	// the listed cells are compared.
	Results []ResultExpect `yaml:"results,omitempty"`
}

// ResultExpect matches one student's rendered cells.
type ResultExpect struct {
	StudentNumber int64             `yaml:"student_number"`
	Cells         map[string]string `yaml:"cells"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typoed key fails loudly instead of silently passing.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario yaml: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Weeks) == 0 {
		return fmt.Errorf("weeks list is required and must be non-empty")
	}
	if s.Today != "" {
		if _, err := time.Parse("2006-01-02", s.Today); err != nil {
			return fmt.Errorf("today: %w", err)
		}
	}
	return nil
}

// startDate returns the first week's date, defaulting to a fixed instant
// so golden output stays stable when the scenario omits it.
func (s *Scenario) startDate() time.Time {
	if s.Today == "" {
		return time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	}
	t, _ := time.Parse("2006-01-02", s.Today)
	return t
}

// effectiveConfig applies the loader defaults the inline config skips.
func (s *Scenario) effectiveConfig() *config.Config {
	cfg := s.Config
	if cfg.FlagThreshold == 0 {
		cfg.FlagThreshold = 90
	}
	if cfg.TotalSchoolDays == 0 {
		cfg.TotalSchoolDays = 160
	}
	return &cfg
}

func (w *Week) inputs() engine.Inputs {
	return engine.Inputs{
		Attendance:   toRows(w.Attendance),
		Demographics: toRows(w.Demographics),
		Probation:    toRows(w.Probation),
		Med:          toRows(w.Med),
		Medp:         toRows(w.Medp),
	}
}

func toRows(maps []map[string]string) []tabular.Row {
	if len(maps) == 0 {
		return nil
	}
	rows := make([]tabular.Row, len(maps))
	for i, m := range maps {
		rows[i] = tabular.Row(m)
	}
	return rows
}
