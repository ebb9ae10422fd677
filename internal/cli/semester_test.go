package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYTDAttendanceCSV = `Student Number,Name,Grade,Hrs Attended,Hrs Absent,Hrs Possible
1001,"Doe, Jane",9,700,100,800
`

const testMedCSV = `StudNum,Date
1001,2026-02-03
1001,2025-12-15
`

func TestRunSemester_WritesSchoolReports(t *testing.T) {
	dir := t.TempDir()
	opts := &SemesterOptions{
		RootOptions: &RootOptions{Format: "text"},
		Config:      writeFixture(t, dir, "district.yaml", testDistrictConfig),
		Attendance:  writeFixture(t, dir, "ytd.csv", testYTDAttendanceCSV),
		Med:         writeFixture(t, dir, "med.csv", testMedCSV),
		Out:         filepath.Join(dir, "semester"),
	}
	cmd, out := testCommand()

	require.NoError(t, runSemester(opts, cmd))
	assert.Contains(t, out.String(), "1 skipped")

	// This extract carries no attending-school column, so the record is
	// unroutable and lands in the skipped extract.
	assert.FileExists(t, filepath.Join(opts.Out, "Skipped_Records.csv"))
}

func TestRunSemester_RoutesByAttendingSchool(t *testing.T) {
	dir := t.TempDir()
	attendance := `Student Number,Name,Grade,Hrs Attended,Hrs Absent,Hrs Possible,School
1001,"Doe, Jane",9,700,100,800,2
`
	cfg := replaceOnce(testDistrictConfig, "    \"Hrs Possible\": hrs_possible\n",
		"    \"Hrs Possible\": hrs_possible\n    \"School\": attending_school\n")

	opts := &SemesterOptions{
		RootOptions: &RootOptions{Format: "text"},
		Config:      writeFixture(t, dir, "district.yaml", cfg),
		Attendance:  writeFixture(t, dir, "ytd.csv", attendance),
		Med:         writeFixture(t, dir, "med.csv", testMedCSV),
		Out:         filepath.Join(dir, "semester"),
	}
	cmd, _ := testCommand()

	require.NoError(t, runSemester(opts, cmd))

	path := filepath.Join(opts.Out, "North_High", "North High_attendance.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// 700/800 = 87.50 plus one in-window med day out of 80: 1.25
	assert.Contains(t, string(data), "87.50")
	assert.Contains(t, string(data), "88.75")
	assert.NoFileExists(t, filepath.Join(opts.Out, "Skipped_Records.csv"))
}

func TestRunSemester_RequiresSemesterConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := replaceOnce(testDistrictConfig, "total_semester_days: 80\n", "")
	cfg = replaceOnce(cfg, "semester_start: \"2026-01-05\"\n", "")

	opts := &SemesterOptions{
		RootOptions: &RootOptions{Format: "text"},
		Config:      writeFixture(t, dir, "district.yaml", cfg),
		Attendance:  writeFixture(t, dir, "ytd.csv", testYTDAttendanceCSV),
		Out:         dir,
	}
	cmd, _ := testCommand()

	err := runSemester(opts, cmd)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func replaceOnce(s, old, new string) string {
	return string(bytes.Replace([]byte(s), []byte(old), []byte(new), 1))
}
