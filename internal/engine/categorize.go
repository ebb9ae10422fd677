package engine

import (
	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/record"
)

// letterFloor is the attendance percentage below which a student is no
// longer a candidate for the intervention letter. Students that far below
// threshold are handled through a separate process, so the letter subset
// deliberately excludes them.
const letterFloor = 70.0

// Categorize assigns every result its attendance severity category from the
// current-week percentage.
func Categorize(rs *ResultSet) {
	for _, r := range rs.All() {
		r.Category = record.Categorize(r.CurrentWeekAttPercent)
	}
}

// QualifiesForLetter reports whether a student meets every condition for
// the intervention form letter: below threshold for three consecutive
// weeks, currently below threshold, trending down against both prior weeks,
// below threshold for two consecutive weeks, and at or above the 70% floor.
func QualifiesForLetter(r *record.Result, threshold float64) bool {
	return r.Below90ThreeWeeks &&
		r.CurrentWeekAttPercent < threshold &&
		r.TrendTwoWeeks == record.TrendDown &&
		r.TrendOneWeek == record.TrendDown &&
		r.Below90TwoWeeks &&
		r.CurrentWeekAttPercent >= letterFloor
}

// MapSchoolCodes replaces the numeric attending and residence school codes
// carried from the demographic extract with configured school names.
// Unmapped codes keep an explicit unknown-school marker so they surface in
// the reports instead of vanishing.
func MapSchoolCodes(rs *ResultSet, cfg *config.Config) {
	for _, r := range rs.All() {
		r.AttendingSchool = cfg.SchoolName(r.AttendingSchool, r.AttendingSchool != "")
		r.SchoolOfResidence = cfg.SchoolName(r.SchoolOfResidence, r.SchoolOfResidence != "")
	}
}

// FilterUnknownSchools drops records whose residence school could not be
// resolved at all (no demographic match or an empty code). These students
// cannot be routed to any building group.
func FilterUnknownSchools(rs *ResultSet) *ResultSet {
	return rs.Filter(func(r *record.Result) bool {
		return r.SchoolOfResidence != config.UnknownSchoolNone
	})
}
