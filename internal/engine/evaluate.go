package engine

import (
	"log/slog"

	"github.com/districtops/atttrack/internal/record"
)

// PrimeResults builds the initial ResultSet from the current-week snapshot:
// one record per student carrying name, grade, the current percentage, and
// the one-week below-threshold flag. Entries without a student number are
// skipped with a warning rather than failing the run.
func PrimeResults(current []record.SnapshotRecord, threshold float64) *ResultSet {
	rs := NewResultSet()
	for _, s := range current {
		if s.StudentNumber == 0 {
			slog.Warn("snapshot entry missing student number, skipping", "name", s.Name)
			continue
		}
		rs.Add(&record.Result{
			StudentNumber:         s.StudentNumber,
			Name:                  s.Name,
			Grade:                 s.Grade,
			CurrentWeekAttPercent: s.AttPercent,
			Below90OneWeek:        s.AttPercent < threshold,
		})
	}
	return rs
}

// CompareOneWeekBack sets the one-week comparison fields on every current
// student: the prior percentage (nil when the student has no one-week-back
// row), the two-consecutive-weeks below-threshold flag, and the one-week
// trend. A completely empty one-week-back snapshot leaves the results
// untouched; this is the bootstrap run.
//
// The two-week flag is conjunctive: it holds only when the student is below
// threshold in both the current week and the prior week.
func CompareOneWeekBack(current, oneWeekBack []record.SnapshotRecord, rs *ResultSet, threshold float64) {
	if len(oneWeekBack) == 0 {
		return
	}
	prior := percentByStudent(oneWeekBack)

	for _, s := range current {
		r, ok := rs.Get(s.StudentNumber)
		if !ok {
			continue
		}
		priorPercent := prior[s.StudentNumber]

		r.OneWeekBackPercent = priorPercent
		r.Below90TwoWeeks = s.AttPercent < threshold && priorPercent != nil && *priorPercent < threshold
		r.TrendOneWeek = record.Compare(s.AttPercent, priorPercent)
	}
}

// CompareTwoWeeksBack sets the two-weeks comparison fields. The
// three-consecutive-weeks flag deliberately reads the one-week percentage
// already stored on the result by CompareOneWeekBack instead of looking the
// prior week up again: when one-week data was missing or partial, the flag
// must reflect what the earlier stage recorded.
func CompareTwoWeeksBack(current, twoWeeksBack []record.SnapshotRecord, rs *ResultSet, threshold float64) {
	if len(twoWeeksBack) == 0 {
		return
	}
	prior := percentByStudent(twoWeeksBack)

	for _, s := range current {
		r, ok := rs.Get(s.StudentNumber)
		if !ok {
			continue
		}
		priorPercent := prior[s.StudentNumber]

		r.TwoWeeksBackPercent = priorPercent
		r.Below90ThreeWeeks = s.AttPercent < threshold &&
			r.OneWeekBackPercent != nil && *r.OneWeekBackPercent < threshold &&
			priorPercent != nil && *priorPercent < threshold
		r.TrendTwoWeeks = record.Compare(s.AttPercent, priorPercent)
	}
}

func percentByStudent(snapshot []record.SnapshotRecord) map[int64]*float64 {
	m := make(map[int64]*float64, len(snapshot))
	for _, s := range snapshot {
		p := s.AttPercent
		m[s.StudentNumber] = &p
	}
	return m
}
