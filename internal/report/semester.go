package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/districtops/atttrack/internal/engine"
	"github.com/districtops/atttrack/internal/record"
)

// SemesterColumns is the fixed column set of the semester-to-date reports.
var SemesterColumns = []string{
	record.ColStudentNumber,
	record.ColName,
	record.ColGrade,
	record.ColCurrentWeekPercent,
	record.ColMedFullDays,
	record.ColMedPartialDays,
	record.ColMedAbsencePercent,
	record.ColBestCaseAttendance,
	record.ColAttendingSchool,
}

// WriteSemesterReports writes one folder per attending school holding that
// school's semester attendance CSV, plus a Skipped_Records extract for
// students whose school code could not be resolved.
func (w *Writer) WriteSemesterReports(results, skipped *engine.ResultSet) error {
	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	bySchool := make(map[string][]*record.Result)
	var schools []string
	for _, r := range results.All() {
		if _, seen := bySchool[r.AttendingSchool]; !seen {
			schools = append(schools, r.AttendingSchool)
		}
		bySchool[r.AttendingSchool] = append(bySchool[r.AttendingSchool], r)
	}

	for _, school := range schools {
		dir := filepath.Join(w.OutDir, strings.ReplaceAll(school, " ", "_"))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create school folder: %w", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_attendance.csv", school))
		if err := w.writeCSV(path, bySchool[school], SemesterColumns); err != nil {
			return err
		}
		slog.Info("semester report written", "school", school, "students", len(bySchool[school]))
	}

	if skipped != nil && skipped.Len() > 0 {
		path := filepath.Join(w.OutDir, "Skipped_Records.csv")
		if err := w.writeCSV(path, skipped.All(), SemesterColumns); err != nil {
			return err
		}
		slog.Info("skipped records written", "count", skipped.Len())
	}
	return nil
}
