package record

// Trend classifies the week-over-week movement of a student's attendance
// percentage relative to a single prior period.
//
// The zero value TrendUnset means the comparison stage never ran for this
// student (no prior snapshot existed at all); it renders as an empty cell.
// TrendNotApplicable means the stage ran but found no matching prior row for
// this particular student.
type Trend int

const (
	TrendUnset Trend = iota
	TrendUp
	TrendDown
	TrendNoChange
	TrendNotApplicable
)

// Compare classifies current against prior. A nil prior yields
// TrendNotApplicable.
func Compare(current float64, prior *float64) Trend {
	switch {
	case prior == nil:
		return TrendNotApplicable
	case current > *prior:
		return TrendUp
	case current < *prior:
		return TrendDown
	default:
		return TrendNoChange
	}
}

// String returns the report label for the trend.
func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "Up"
	case TrendDown:
		return "Down"
	case TrendNoChange:
		return "No Change"
	case TrendNotApplicable:
		return "N/A"
	default:
		return ""
	}
}
