package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/districtops/atttrack/internal/record"
)

const threshold = 90.0

func snapshot(id int64, percent float64) record.SnapshotRecord {
	return record.SnapshotRecord{
		StudentNumber: id,
		Name:          "Student",
		Grade:         "7",
		AttPercent:    percent,
	}
}

func TestPrimeResults_FlagsBelowThreshold(t *testing.T) {
	rs := PrimeResults([]record.SnapshotRecord{
		snapshot(1001, 83.33),
		snapshot(1002, 95),
	}, threshold)

	require.Equal(t, 2, rs.Len())

	r, ok := rs.Get(1001)
	require.True(t, ok)
	assert.InDelta(t, 83.33, r.CurrentWeekAttPercent, 0.001)
	assert.True(t, r.Below90OneWeek)

	r, ok = rs.Get(1002)
	require.True(t, ok)
	assert.False(t, r.Below90OneWeek)
}

func TestPrimeResults_SkipsMissingID(t *testing.T) {
	rs := PrimeResults([]record.SnapshotRecord{
		{Name: "No ID", AttPercent: 50},
		snapshot(1002, 95),
	}, threshold)

	assert.Equal(t, 1, rs.Len())
}

func TestCompareOneWeekBack_SetsComparisonFields(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33)}
	oneBack := []record.SnapshotRecord{snapshot(1001, 66.67)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, oneBack, rs, threshold)

	r, _ := rs.Get(1001)
	require.NotNil(t, r.OneWeekBackPercent)
	assert.InDelta(t, 66.67, *r.OneWeekBackPercent, 0.001)
	assert.Equal(t, record.TrendUp, r.TrendOneWeek)
	assert.True(t, r.Below90TwoWeeks, "83.33 and 66.67 are both below 90")
}

func TestCompareOneWeekBack_NoMatchIsNotApplicable(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33)}
	oneBack := []record.SnapshotRecord{snapshot(9999, 50)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, oneBack, rs, threshold)

	r, _ := rs.Get(1001)
	assert.Nil(t, r.OneWeekBackPercent)
	assert.Equal(t, record.TrendNotApplicable, r.TrendOneWeek)
	assert.False(t, r.Below90TwoWeeks)
}

func TestCompareOneWeekBack_EmptyPriorIsNoOp(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, nil, rs, threshold)

	r, _ := rs.Get(1001)
	assert.Nil(t, r.OneWeekBackPercent)
	assert.Equal(t, record.TrendUnset, r.TrendOneWeek)
}

func TestCompareTwoWeeksBack_ConjunctiveFlag(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33)}
	oneBack := []record.SnapshotRecord{snapshot(1001, 85)}
	twoBack := []record.SnapshotRecord{snapshot(1001, 88)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, oneBack, rs, threshold)
	CompareTwoWeeksBack(current, twoBack, rs, threshold)

	r, _ := rs.Get(1001)
	require.NotNil(t, r.TwoWeeksBackPercent)
	assert.InDelta(t, 88, *r.TwoWeeksBackPercent, 0.001)
	assert.True(t, r.Below90ThreeWeeks, "all three weeks below 90")
	assert.Equal(t, record.TrendDown, r.TrendTwoWeeks)
}

func TestCompareTwoWeeksBack_NotBelowWhenAnyWeekAbove(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33)}
	oneBack := []record.SnapshotRecord{snapshot(1001, 92)}
	twoBack := []record.SnapshotRecord{snapshot(1001, 80)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, oneBack, rs, threshold)
	CompareTwoWeeksBack(current, twoBack, rs, threshold)

	r, _ := rs.Get(1001)
	assert.False(t, r.Below90ThreeWeeks, "one week back was above threshold")
	assert.True(t, r.Below90OneWeek)
	assert.False(t, r.Below90TwoWeeks)
}

func TestCompareTwoWeeksBack_ReadsStoredOneWeekPercent(t *testing.T) {
	// The student has a two-weeks-back row but no one-week-back row. The
	// three-week flag must consult the stored (nil) one-week percent and
	// stay false, not re-derive anything from the snapshots.
	current := []record.SnapshotRecord{snapshot(1001, 80)}
	oneBack := []record.SnapshotRecord{snapshot(9999, 50)}
	twoBack := []record.SnapshotRecord{snapshot(1001, 70)}
	rs := PrimeResults(current, threshold)

	CompareOneWeekBack(current, oneBack, rs, threshold)
	CompareTwoWeeksBack(current, twoBack, rs, threshold)

	r, _ := rs.Get(1001)
	require.Nil(t, r.OneWeekBackPercent)
	assert.False(t, r.Below90ThreeWeeks)
	assert.Equal(t, record.TrendDown, r.TrendTwoWeeks)
}

func TestComparisons_AreIdempotentAgainstSameLedger(t *testing.T) {
	current := []record.SnapshotRecord{snapshot(1001, 83.33), snapshot(1002, 95)}
	oneBack := []record.SnapshotRecord{snapshot(1001, 66.67)}
	twoBack := []record.SnapshotRecord{snapshot(1001, 88)}

	run := func() []*record.Result {
		rs := PrimeResults(current, threshold)
		CompareOneWeekBack(current, oneBack, rs, threshold)
		CompareTwoWeeksBack(current, twoBack, rs, threshold)
		return rs.All()
	}

	assert.Equal(t, run(), run())
}
