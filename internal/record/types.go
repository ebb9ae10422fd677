package record

import "strconv"

// SnapshotRecord is one student's consolidated attendance for a single
// reporting period. Multiple raw rows (one per reporting location) collapse
// into exactly one SnapshotRecord per student; students with zero possible
// hours never appear.
type SnapshotRecord struct {
	StudentNumber int64
	Name          string
	Grade         string
	HrsAttended   float64
	HrsAbsent     float64
	HrsPossible   float64
	AttPercent    float64 // attended/possible*100, rounded to 2 decimals
}

// Ledger age tags. On every rollover each entry's age decrements by one;
// entries reaching AgeExpired are dropped from the ledger.
const (
	AgeCurrent     = -1 // appended this run, read as "one week back" next run
	AgeOneWeekBack = -1
	AgeTwoWeeks    = -2
	AgeExpired     = -3
)

// LedgerEntry is a SnapshotRecord persisted in the rolling ledger together
// with its age tag.
type LedgerEntry struct {
	SnapshotRecord
	Age int
}

// Result is the authoritative merged per-student record. It is created once
// per run from the current-week snapshot and then enriched stage by stage:
// week-over-week comparison fields, demographics, probation status, medical
// day counts, and finally the attendance category.
//
// Optional numeric fields are pointers: nil means the source period or
// dataset had no matching entry for this student. String fields left empty
// were never set by any stage.
type Result struct {
	StudentNumber int64
	Name          string
	Grade         string

	// Set by PrimeResults.
	CurrentWeekAttPercent float64
	Below90OneWeek        bool

	// Set by CompareOneWeekBack (when any one-week-back data exists).
	OneWeekBackPercent *float64
	Below90TwoWeeks    bool
	TrendOneWeek       Trend

	// Set by CompareTwoWeeksBack (when this student has a two-weeks-back row).
	TwoWeeksBackPercent *float64
	Below90ThreeWeeks   bool
	TrendTwoWeeks       Trend

	// Set by MergeDemographics. Age is rendered text: the calendar age
	// when the date of birth parses, "Unknown" otherwise.
	DOB               string
	Age               string
	AttendingSchool   string
	SchoolOfResidence string
	HomeRoom          string
	Street            string
	City              string
	State             string
	Zip               string
	RelTypeCodeSetID  string
	IsCustodial       string
	LivesWith         string
	ReceivesMail      string
	FullName          string
	EmailAddress      string
	PhoneNumber       string
	PhoneNumberExt    string
	IsSMS             string
	IsPreferred       string
	Team              string

	// Set by MergeProbation.
	CurrentStatus string
	EndDate       string
	PALetter1     string
	PALetter2     string
	LastUpdated   string
	Notes         string

	// Set by MergeMedicalDays.
	MedFullDays        int
	MedPartialDays     int
	MedAbsencePercent  float64
	BestCaseAttendance float64

	// Set by Categorize.
	Category Category
}

// Float64 returns a pointer to v. Convenience for building optional fields.
func Float64(v float64) *float64 { return &v }

// FormatPercent renders an attendance percentage with two decimal places,
// matching how percentages are persisted in the ledger and reports.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
