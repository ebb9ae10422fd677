package record

import "strconv"

// Canonical column names shared by the ledger, the reports, and the
// district configuration's column_order list.
const (
	ColStudentNumber       = "student_number"
	ColName                = "name"
	ColGrade               = "grade"
	ColHrsAttended         = "hrs_attended"
	ColHrsAbsent           = "hrs_absent"
	ColHrsPossible         = "hrs_possible"
	ColIndAttPercent       = "ind_att_percent"
	ColWeeklyValue         = "weekly_value"
	ColCurrentWeekPercent  = "current_week_att_percent"
	ColMedFullDays         = "med_full_days"
	ColMedPartialDays      = "med_partial_days"
	ColMedAbsencePercent   = "med_absence_percent"
	ColBestCaseAttendance  = "best_case_attendance_percent"
	ColBelow90OneWeek      = "below_90_1_week"
	ColOneWeekBackPercent  = "one_week_back_percent"
	ColBelow90TwoWeeks     = "below_90_2_weeks"
	ColTrendOneWeek        = "trend_1_week"
	ColTwoWeeksBackPercent = "two_weeks_back_percent"
	ColBelow90ThreeWeeks   = "below_90_3_weeks"
	ColTrendTwoWeeks       = "trend_2_weeks"
	ColCategory            = "attendance_category"
	ColDOB                 = "dob"
	ColAge                 = "age"
	ColAttendingSchool     = "attending_school"
	ColSchoolOfResidence   = "school_of_residence"
	ColHomeRoom            = "home_room"
	ColTeam                = "team"
	ColCurrentStatus       = "current_status"
	ColEndDate             = "end_date"
	ColPALetter1           = "pa_letter_1"
	ColPALetter2           = "pa_letter_2"
	ColLastUpdated         = "last_updated"
	ColNotes               = "notes"
	ColStreet              = "street"
	ColCity                = "city"
	ColState               = "state"
	ColZip                 = "zip"
	ColRelTypeCodeSetID    = "current_rel_type_code_set_id"
	ColIsCustodial         = "is_custodial"
	ColLivesWith           = "lives_with"
	ColReceivesMail        = "receives_mail"
	ColFullName            = "full_name"
	ColEmailAddress        = "email_address"
	ColPhoneNumber         = "phone_number"
	ColPhoneNumberExt      = "phone_number_ext"
	ColIsSMS               = "is_sms"
	ColIsPreferred         = "is_preferred"
)

// LedgerColumns is the fixed column order of the persisted ledger file.
var LedgerColumns = []string{
	ColStudentNumber,
	ColName,
	ColGrade,
	ColHrsAttended,
	ColHrsAbsent,
	ColHrsPossible,
	ColIndAttPercent,
	ColWeeklyValue,
}

// ResultColumns lists every column a Result can render, in the default
// report order. The district config may reorder or omit columns; names not
// in this set are skipped when reordering.
var ResultColumns = []string{
	ColStudentNumber,
	ColName,
	ColGrade,
	ColCurrentWeekPercent,
	ColMedFullDays,
	ColMedPartialDays,
	ColMedAbsencePercent,
	ColBestCaseAttendance,
	ColBelow90OneWeek,
	ColOneWeekBackPercent,
	ColBelow90TwoWeeks,
	ColTrendOneWeek,
	ColTwoWeeksBackPercent,
	ColBelow90ThreeWeeks,
	ColTrendTwoWeeks,
	ColCategory,
	ColDOB,
	ColAge,
	ColAttendingSchool,
	ColSchoolOfResidence,
	ColHomeRoom,
	ColTeam,
	ColCurrentStatus,
	ColEndDate,
	ColPALetter1,
	ColPALetter2,
	ColLastUpdated,
	ColNotes,
	ColStreet,
	ColCity,
	ColState,
	ColZip,
	ColRelTypeCodeSetID,
	ColIsCustodial,
	ColLivesWith,
	ColReceivesMail,
	ColFullName,
	ColEmailAddress,
	ColPhoneNumber,
	ColPhoneNumberExt,
	ColIsSMS,
	ColIsPreferred,
}

var resultColumnSet = func() map[string]bool {
	m := make(map[string]bool, len(ResultColumns))
	for _, c := range ResultColumns {
		m[c] = true
	}
	return m
}()

// IsResultColumn reports whether name is a known result column.
func IsResultColumn(name string) bool { return resultColumnSet[name] }

// Cell renders the named column of r as a report cell. Unset optional
// fields render as empty cells; unknown column names render empty.
func (r *Result) Cell(col string) string {
	switch col {
	case ColStudentNumber:
		return strconv.FormatInt(r.StudentNumber, 10)
	case ColName:
		return r.Name
	case ColGrade:
		return r.Grade
	case ColCurrentWeekPercent:
		return FormatPercent(r.CurrentWeekAttPercent)
	case ColMedFullDays:
		return strconv.Itoa(r.MedFullDays)
	case ColMedPartialDays:
		return strconv.Itoa(r.MedPartialDays)
	case ColMedAbsencePercent:
		return FormatPercent(r.MedAbsencePercent)
	case ColBestCaseAttendance:
		return FormatPercent(r.BestCaseAttendance)
	case ColBelow90OneWeek:
		return strconv.FormatBool(r.Below90OneWeek)
	case ColOneWeekBackPercent:
		return formatOptPercent(r.OneWeekBackPercent)
	case ColBelow90TwoWeeks:
		return strconv.FormatBool(r.Below90TwoWeeks)
	case ColTrendOneWeek:
		return r.TrendOneWeek.String()
	case ColTwoWeeksBackPercent:
		return formatOptPercent(r.TwoWeeksBackPercent)
	case ColBelow90ThreeWeeks:
		return strconv.FormatBool(r.Below90ThreeWeeks)
	case ColTrendTwoWeeks:
		return r.TrendTwoWeeks.String()
	case ColCategory:
		return r.Category.String()
	case ColDOB:
		return r.DOB
	case ColAge:
		return r.Age
	case ColAttendingSchool:
		return r.AttendingSchool
	case ColSchoolOfResidence:
		return r.SchoolOfResidence
	case ColHomeRoom:
		return r.HomeRoom
	case ColTeam:
		return r.Team
	case ColCurrentStatus:
		return r.CurrentStatus
	case ColEndDate:
		return r.EndDate
	case ColPALetter1:
		return r.PALetter1
	case ColPALetter2:
		return r.PALetter2
	case ColLastUpdated:
		return r.LastUpdated
	case ColNotes:
		return r.Notes
	case ColStreet:
		return r.Street
	case ColCity:
		return r.City
	case ColState:
		return r.State
	case ColZip:
		return r.Zip
	case ColRelTypeCodeSetID:
		return r.RelTypeCodeSetID
	case ColIsCustodial:
		return r.IsCustodial
	case ColLivesWith:
		return r.LivesWith
	case ColReceivesMail:
		return r.ReceivesMail
	case ColFullName:
		return r.FullName
	case ColEmailAddress:
		return r.EmailAddress
	case ColPhoneNumber:
		return r.PhoneNumber
	case ColPhoneNumberExt:
		return r.PhoneNumberExt
	case ColIsSMS:
		return r.IsSMS
	case ColIsPreferred:
		return r.IsPreferred
	default:
		return ""
	}
}

func formatOptPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatPercent(*v)
}
