package engine

import (
	"log/slog"
	"math"

	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// Consolidate merges the raw attendance rows into one SnapshotRecord per
// student. A student reported by several locations in the same period
// appears once with hours summed across all their rows; the attendance
// percentage is recomputed from the summed hours and rounded to two
// decimals.
//
// Students whose total possible hours are zero have no defined attendance
// rate and are excluded. Rows without a parseable student number are skipped
// with a warning. Output order is the order of each student's first
// appearance.
func Consolidate(rows []tabular.Row) []record.SnapshotRecord {
	byID := make(map[int64]*record.SnapshotRecord)
	var order []int64

	for i, row := range rows {
		id, ok := row.Int64(record.ColStudentNumber)
		if !ok {
			slog.Warn("attendance row missing student number, skipping", "row", i+1)
			continue
		}

		s, seen := byID[id]
		if !seen {
			name, _ := row.String(record.ColName)
			grade, _ := row.String(record.ColGrade)
			s = &record.SnapshotRecord{StudentNumber: id, Name: name, Grade: grade}
			byID[id] = s
			order = append(order, id)
		}

		attended, _ := row.Float(record.ColHrsAttended)
		absent, _ := row.Float(record.ColHrsAbsent)
		possible, _ := row.Float(record.ColHrsPossible)
		s.HrsAttended += attended
		s.HrsAbsent += absent
		s.HrsPossible += possible

		if s.HrsPossible > 0 {
			s.AttPercent = Round2(s.HrsAttended / s.HrsPossible * 100)
		}
	}

	out := make([]record.SnapshotRecord, 0, len(order))
	for _, id := range order {
		s := byID[id]
		if s.HrsPossible <= 0 {
			slog.Warn("student has no possible hours, excluding", "student", id)
			continue
		}
		out = append(out, *s)
	}
	return out
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
