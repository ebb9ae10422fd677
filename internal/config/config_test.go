package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
flag_threshold: 90
total_school_days: 160
total_semester_days: 80
semester_start: "2026-01-05"
mappings:
  attendance:
    "Student Number": student_number
    "Name": name
    "Grade": grade
    "Hrs Attended": hrs_attended
    "Hrs Absent": hrs_absent
    "Hrs Possible": hrs_possible
  demographics:
    "StudentNumber": student_number
    "DOB": dob
  probation:
    "Student ID #": student_number
  med:
    "StudNum": student_number
  medp:
    "StudNum": student_number
schools:
  1: High School 1
  2: Middle School 1
building_groups:
  team 1: [High School 1]
  District: [High School 1, Middle School 1]
column_order: [student_number, name, current_week_att_percent]
alt_schools: [alt HS]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "district.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.FlagThreshold)
	assert.Equal(t, 160, cfg.TotalSchoolDays)
	assert.Equal(t, "High School 1", cfg.Schools[1])
	assert.Equal(t, []string{"High School 1"}, cfg.BuildingGroups["team 1"])
	assert.Equal(t, "student_number", cfg.Mappings.Attendance["Student Number"])

	start, err := cfg.SemesterStartDate()
	require.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_RejectsBadThreshold(t *testing.T) {
	bad := `
flag_threshold: 190
total_school_days: 160
mappings:
  attendance: {"Student Number": student_number}
  demographics: {}
  probation: {}
  med: {}
  medp: {}
schools: {1: High School 1}
building_groups: {team 1: [High School 1]}
column_order: [student_number]
`
	err := Validate([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestValidate_RejectsMissingMappings(t *testing.T) {
	bad := `
flag_threshold: 90
total_school_days: 160
schools: {1: High School 1}
building_groups: {team 1: [High School 1]}
column_order: [student_number]
`
	err := Validate([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mappings")
}

func TestValidate_RejectsOmittedSections(t *testing.T) {
	// Each section is mandatory on its own; dropping any one of them
	// must fail validation even though the document is otherwise clean.
	sections := map[string]string{
		"flag_threshold":    "flag_threshold: 90",
		"total_school_days": "total_school_days: 160",
		"mappings": `mappings:
  attendance: {"Student Number": student_number}
  demographics: {}
  probation: {}
  med: {}
  medp: {}`,
		"schools":         "schools: {1: High School 1}",
		"building_groups": "building_groups: {team 1: [High School 1]}",
		"column_order":    "column_order: [student_number]",
	}
	for omitted := range sections {
		t.Run(omitted, func(t *testing.T) {
			var doc strings.Builder
			for name, body := range sections {
				if name == omitted {
					continue
				}
				doc.WriteString(body)
				doc.WriteString("\n")
			}
			err := Validate([]byte(doc.String()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), omitted)
		})
	}
}

func TestValidate_RejectsMissingExtractMapping(t *testing.T) {
	bad := `
flag_threshold: 90
total_school_days: 160
mappings:
  attendance: {"Student Number": student_number}
  demographics: {}
  probation: {}
  medp: {}
schools: {1: High School 1}
building_groups: {team 1: [High School 1]}
column_order: [student_number]
`
	err := Validate([]byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "med")
}

func TestGroupNames_Deterministic(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, []string{"District", "team 1"}, cfg.GroupNames())
}

func TestSchoolName(t *testing.T) {
	cfg := &Config{Schools: map[int]string{1: "High School 1"}}

	assert.Equal(t, "High School 1", cfg.SchoolName("1", true))
	assert.Equal(t, "High School 1", cfg.SchoolName("1.0", true))
	assert.Equal(t, "Unknown School (Code: 99)", cfg.SchoolName("99", true))
	assert.Equal(t, UnknownSchoolNone, cfg.SchoolName("", false))
	assert.Equal(t, UnknownSchoolNone, cfg.SchoolName("abc", true))
}
