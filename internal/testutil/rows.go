package testutil

import (
	"strconv"

	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// AttendanceRow builds one raw attendance extract row in canonical column
// names, the shape rows have after header mapping.
func AttendanceRow(id int64, name, grade string, attended, absent, possible float64) tabular.Row {
	return tabular.Row{
		record.ColStudentNumber: strconv.FormatInt(id, 10),
		record.ColName:          name,
		record.ColGrade:         grade,
		record.ColHrsAttended:   formatHours(attended),
		record.ColHrsAbsent:     formatHours(absent),
		record.ColHrsPossible:   formatHours(possible),
	}
}

// MedRow builds one medical-excuse day row.
func MedRow(id int64, date string) tabular.Row {
	return tabular.Row{
		record.ColStudentNumber: strconv.FormatInt(id, 10),
		"date":                  date,
	}
}

func formatHours(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
