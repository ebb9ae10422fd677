package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/districtops/atttrack/internal/config"
	"github.com/districtops/atttrack/internal/record"
	"github.com/districtops/atttrack/internal/tabular"
	"github.com/districtops/atttrack/internal/testutil"
)

func pipelineConfig() *config.Config {
	return &config.Config{
		FlagThreshold:   90,
		TotalSchoolDays: 160,
		Schools:         map[int]string{2: "Eastside Middle", 4: "North High"},
	}
}

func TestPipelineRun_FullPass(t *testing.T) {
	p := &Pipeline{
		Config: pipelineConfig(),
		Today:  time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC),
	}

	demo := demoRow("1001", "2012-05-04", "Doe", "Jane", "")
	demo[record.ColAttendingSchool] = "4"
	demo[record.ColSchoolOfResidence] = "2"

	in := Inputs{
		Attendance: []tabular.Row{
			attRow("1001", "Doe, Jane", "7", "10", "2", "12"),
			attRow("1001", "Doe, Jane", "7", "10", "0", "10"),
		},
		Demographics: []tabular.Row{demo},
		Probation: []tabular.Row{
			{record.ColStudentNumber: "1001", record.ColCurrentStatus: "Active"},
		},
		Med:  []tabular.Row{{record.ColStudentNumber: "1001"}},
		OneWeekBack: []record.SnapshotRecord{
			{StudentNumber: 1001, AttPercent: 92.5},
		},
		TwoWeeksBack: []record.SnapshotRecord{
			{StudentNumber: 1001, AttPercent: 88},
		},
	}

	current, rs := p.Run(in)

	require.Len(t, current, 1)
	assert.InDelta(t, 90.91, current[0].AttPercent, 0.001)

	require.Equal(t, 1, rs.Len())
	r, _ := rs.Get(1001)
	assert.False(t, r.Below90OneWeek)
	assert.Equal(t, record.TrendDown, r.TrendOneWeek)
	assert.Equal(t, record.TrendUp, r.TrendTwoWeeks)
	assert.False(t, r.Below90TwoWeeks)
	assert.False(t, r.Below90ThreeWeeks)
	assert.Equal(t, "Doe, Jane", r.FullName)
	assert.Equal(t, "North High", r.AttendingSchool)
	assert.Equal(t, "Eastside Middle", r.SchoolOfResidence)
	assert.Equal(t, "Active", r.CurrentStatus)
	assert.Equal(t, 1, r.MedFullDays)
	assert.InDelta(t, 0.63, r.MedAbsencePercent, 0.001)
	assert.Equal(t, record.Category90To94, r.Category)
}

func TestPipelineRun_BootstrapWeek(t *testing.T) {
	p := &Pipeline{Config: pipelineConfig(), Today: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)}

	demo := demoRow("1001", "2012-05-04", "Doe", "Jane", "")
	demo[record.ColSchoolOfResidence] = "2"

	current, rs := p.Run(Inputs{
		Attendance:   []tabular.Row{attRow("1001", "Doe, Jane", "7", "10", "2", "12")},
		Demographics: []tabular.Row{demo},
	})

	require.Len(t, current, 1)
	r, _ := rs.Get(1001)
	assert.True(t, r.Below90OneWeek)
	assert.Nil(t, r.OneWeekBackPercent)
	assert.Nil(t, r.TwoWeeksBackPercent)
	assert.Equal(t, record.TrendUnset, r.TrendOneWeek)
	assert.Equal(t, record.TrendUnset, r.TrendTwoWeeks)
	assert.False(t, r.Below90TwoWeeks)
	assert.False(t, r.Below90ThreeWeeks)
	assert.Equal(t, record.CategoryBelow85, r.Category)
}

func TestPipelineRun_DropsUnresolvedResidence(t *testing.T) {
	p := &Pipeline{Config: pipelineConfig(), Today: time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)}

	demo := demoRow("1001", "2012-05-04", "Doe", "Jane", "")
	demo[record.ColSchoolOfResidence] = "2"

	_, rs := p.Run(Inputs{
		Attendance: []tabular.Row{
			attRow("1001", "Doe, Jane", "7", "10", "2", "12"),
			testutil.AttendanceRow(1002, "Roe, Rich", "8", 9, 1, 10),
		},
		Demographics: []tabular.Row{demo},
	})

	assert.Equal(t, 1, rs.Len(), "student without a resolvable residence school is dropped")
	_, ok := rs.Get(1002)
	assert.False(t, ok)
}
