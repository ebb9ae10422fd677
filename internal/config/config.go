// Package config loads the district configuration: column-header mappings
// for each input extract, the school-code table, building groupings, report
// column order, and threshold constants.
//
// The file is YAML. Before it is trusted, the raw document is validated
// against an embedded CUE schema so that a malformed config fails at startup
// with a position-annotated message instead of surfacing mid-pipeline.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/districtops/atttrack/internal/tabular"
)

//go:embed schema.cue
var schemaCUE string

// Mappings holds the raw-header to canonical-name mapping for each input
// extract.
type Mappings struct {
	Attendance   map[string]string `yaml:"attendance"`
	Demographics map[string]string `yaml:"demographics"`
	Probation    map[string]string `yaml:"probation"`
	Med          map[string]string `yaml:"med"`
	Medp         map[string]string `yaml:"medp"`
}

// Config is the full district configuration.
type Config struct {
	FlagThreshold     float64             `yaml:"flag_threshold"`
	TotalSchoolDays   int                 `yaml:"total_school_days"`
	TotalSemesterDays int                 `yaml:"total_semester_days"`
	SemesterStart     string              `yaml:"semester_start"`
	Mappings          Mappings            `yaml:"mappings"`
	Schools           map[int]string      `yaml:"schools"`
	BuildingGroups    map[string][]string `yaml:"building_groups"`
	ColumnOrder       []string            `yaml:"column_order"`
	AltSchools        []string            `yaml:"alt_schools"`
}

// Load reads, validates, and decodes the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks a raw YAML config document against the embedded CUE
// schema.
func Validate(data []byte) error {
	file, err := cueyaml.Extract("district.yaml", data)
	if err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("build config value: %w", err)
	}

	unified := schema.Unify(doc)
	if err := unified.Validate(); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}
	return nil
}

// SemesterStartDate parses the configured semester start date.
func (c *Config) SemesterStartDate() (time.Time, error) {
	if c.SemesterStart == "" {
		return time.Time{}, fmt.Errorf("semester_start is not configured")
	}
	t, err := tabular.ParseDate(c.SemesterStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("semester_start: %w", err)
	}
	return t, nil
}

// GroupNames returns the building group names in deterministic order.
func (c *Config) GroupNames() []string {
	names := make([]string, 0, len(c.BuildingGroups))
	for name := range c.BuildingGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchoolName resolves a school code cell to its configured name. Missing or
// unparsable cells resolve to the unknown-school sentinel with code "None",
// unmapped codes to the sentinel carrying the raw code.
func (c *Config) SchoolName(cell string, ok bool) string {
	if !ok {
		return UnknownSchoolNone
	}
	code, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return UnknownSchoolNone
	}
	if name, found := c.Schools[int(code)]; found {
		return name
	}
	return fmt.Sprintf("Unknown School (Code: %d)", int(code))
}

// UnknownSchoolNone marks records whose school code cell was absent or
// unparsable. Records whose residence school carries this sentinel are
// dropped before reporting.
const UnknownSchoolNone = "Unknown School (Code: None)"
