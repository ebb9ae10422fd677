package engine

import (
	"log/slog"
	"time"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// FilterSince keeps the rows whose date cell (under dateKey) falls on or
// after start, ignoring any time component. Rows with a missing or
// unparseable date are dropped with a warning.
func FilterSince(rows []tabular.Row, dateKey string, start time.Time) []tabular.Row {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	var out []tabular.Row
	for i, row := range rows {
		cell, ok := row.String(dateKey)
		if !ok {
			slog.Warn("row missing date, excluding from semester window", "row", i+1, "key", dateKey)
			continue
		}
		d, err := tabular.ParseDate(cell)
		if err != nil {
			slog.Warn("row has unparseable date, excluding from semester window", "row", i+1, "value", cell)
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		if !day.Before(startDay) {
			out = append(out, row)
		}
	}
	return out
}

// SemesterResults computes the semester-to-date adjusted attendance view:
// attendance consolidated across locations, medical-excuse days counted
// from the semester start forward, and a best-case percentage capped at
// 100. Records route by attending school rather than residence; students
// whose attending school code cannot be resolved land in the skipped set.
func (p *Pipeline) SemesterResults(attendance, med, medp []tabular.Row, semesterStart time.Time) (results, skipped *ResultSet) {
	med = FilterSince(med, "date", semesterStart)
	medp = FilterSince(medp, "date", semesterStart)
	slog.Info("medical days in semester window", "full", len(med), "partial", len(medp))

	consolidated := Consolidate(attendance)
	attendingCode := firstAttendingCode(attendance)

	full := countByStudent(med)
	partial := countByStudent(medp)

	totalDays := p.Config.TotalSemesterDays
	results = NewResultSet()
	skipped = NewResultSet()

	for _, s := range consolidated {
		r := &record.Result{
			StudentNumber:         s.StudentNumber,
			Name:                  s.Name,
			Grade:                 s.Grade,
			CurrentWeekAttPercent: s.AttPercent,
			MedFullDays:           full[s.StudentNumber],
			MedPartialDays:        partial[s.StudentNumber],
		}
		r.MedAbsencePercent = medAbsencePercent(r.MedFullDays, r.MedPartialDays, totalDays)
		r.BestCaseAttendance = min(r.CurrentWeekAttPercent+r.MedAbsencePercent, 100.0)

		code := attendingCode[s.StudentNumber]
		r.AttendingSchool = p.Config.SchoolName(code, code != "")
		if r.AttendingSchool == config.UnknownSchoolNone {
			skipped.Add(r)
			continue
		}
		results.Add(r)
	}
	return results, skipped
}

// firstAttendingCode records each student's attending school code from
// their first raw row; consolidation folds locations together, but the
// semester report groups by the school the student actually attends.
func firstAttendingCode(rows []tabular.Row) map[int64]string {
	codes := make(map[int64]string)
	for _, row := range rows {
		id, ok := row.Int64(record.ColStudentNumber)
		if !ok {
			continue
		}
		if _, seen := codes[id]; seen {
			continue
		}
		if code, ok := row.String(record.ColAttendingSchool); ok {
			codes[id] = code
		}
	}
	return codes
}
