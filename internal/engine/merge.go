package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
)

// MergeDemographics left-joins the demographic extract onto the results by
// student number. Matched records gain date of birth, an exact
// calendar-aware age, the address/contact fields copied verbatim, and a
// "Last, First Middle" full name where the middle segment is included only
// when it is a real value. Students without a demographic row keep their
// fields unset.
func MergeDemographics(rs *ResultSet, rows []tabular.Row, today time.Time) {
	for _, row := range rows {
		id, ok := row.Int64(record.ColStudentNumber)
		if !ok {
			continue
		}
		r, ok := rs.Get(id)
		if !ok {
			continue
		}

		if dobCell, ok := row.String(record.ColDOB); ok {
			dob, err := tabular.ParseDate(dobCell)
			if err != nil {
				r.DOB = "Invalid Date"
				r.Age = "Unknown"
			} else {
				r.DOB = dob.Format("2006-01-02")
				r.Age = strconv.Itoa(ageAt(dob, today))
			}
		} else {
			r.DOB = "Unknown"
			r.Age = "Unknown"
		}

		r.FullName = fullName(
			cell(row, "last_name"),
			cell(row, "first_name"),
			cell(row, "middle_name"),
		)

		r.AttendingSchool = cell(row, record.ColAttendingSchool)
		r.SchoolOfResidence = cell(row, record.ColSchoolOfResidence)
		r.HomeRoom = cell(row, record.ColHomeRoom)
		r.Street = cell(row, record.ColStreet)
		r.City = cell(row, record.ColCity)
		r.State = cell(row, record.ColState)
		r.Zip = cell(row, record.ColZip)
		r.RelTypeCodeSetID = cell(row, record.ColRelTypeCodeSetID)
		r.IsCustodial = cell(row, record.ColIsCustodial)
		r.LivesWith = cell(row, record.ColLivesWith)
		r.ReceivesMail = cell(row, record.ColReceivesMail)
		r.EmailAddress = cell(row, record.ColEmailAddress)
		r.PhoneNumber = cell(row, record.ColPhoneNumber)
		r.PhoneNumberExt = cell(row, record.ColPhoneNumberExt)
		r.IsSMS = cell(row, record.ColIsSMS)
		r.IsPreferred = cell(row, record.ColIsPreferred)

		if team, ok := row.String(record.ColTeam); ok {
			r.Team = team
		} else {
			r.Team = "N/A"
		}
	}
}

// ageAt computes full years between dob and today, subtracting one when
// today's month/day precedes the birthday.
func ageAt(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// fullName renders "Last, First Middle". The middle segment is dropped when
// empty or when the extract exported a null marker in its place.
func fullName(last, first, middle string) string {
	if isNullMarker(middle) {
		return strings.TrimSpace(fmt.Sprintf("%s, %s", last, first))
	}
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", last, first, middle))
}

func isNullMarker(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "none", "null":
		return true
	}
	return false
}

// MergeProbation left-joins the probation/status extract. Matched students
// get the probation fields with "N/A" standing in for any column the
// extract left blank; the notes field defaults to its own marker.
func MergeProbation(rs *ResultSet, rows []tabular.Row) {
	for _, row := range rows {
		id, ok := row.Int64(record.ColStudentNumber)
		if !ok {
			continue
		}
		r, ok := rs.Get(id)
		if !ok {
			continue
		}

		r.CurrentStatus = cellOr(row, record.ColCurrentStatus, "N/A")
		r.EndDate = cellOr(row, record.ColEndDate, "N/A")
		r.PALetter1 = cellOr(row, record.ColPALetter1, "N/A")
		r.PALetter2 = cellOr(row, record.ColPALetter2, "N/A")
		r.LastUpdated = cellOr(row, record.ColLastUpdated, "N/A")
		r.Notes = cellOr(row, record.ColNotes, "No notes available")
	}
}

// MergeMedicalDays counts full and partial medical-excuse day rows per
// student and derives the absence-percentage equivalent and the best-case
// attendance. Every result gets the medical fields, zeroed when the student
// has no excuse rows.
//
// Partial days are weighted identically to full days in the equivalent.
func MergeMedicalDays(rs *ResultSet, med, medp []tabular.Row, totalSchoolDays int) {
	full := countByStudent(med)
	partial := countByStudent(medp)

	for _, r := range rs.All() {
		r.MedFullDays = full[r.StudentNumber]
		r.MedPartialDays = partial[r.StudentNumber]
		r.MedAbsencePercent = medAbsencePercent(r.MedFullDays, r.MedPartialDays, totalSchoolDays)
		r.BestCaseAttendance = min(r.CurrentWeekAttPercent+r.MedAbsencePercent, 100.0)
	}
}

func medAbsencePercent(fullDays, partialDays, totalSchoolDays int) float64 {
	if totalSchoolDays == 0 {
		return 0
	}
	return Round2(float64(fullDays+partialDays) / float64(totalSchoolDays) * 100)
}

func countByStudent(rows []tabular.Row) map[int64]int {
	counts := make(map[int64]int)
	for _, row := range rows {
		if id, ok := row.Int64(record.ColStudentNumber); ok {
			counts[id]++
		}
	}
	return counts
}

func cell(row tabular.Row, key string) string {
	v, _ := row.String(key)
	return v
}

func cellOr(row tabular.Row, key, fallback string) string {
	if v, ok := row.String(key); ok {
		return v
	}
	return fallback
}
