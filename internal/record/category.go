package record

// Category buckets a current-week attendance percentage into one of five
// ordered, mutually exclusive severity bands. The zero value CategoryUnset
// means the categorizer has not run for this record.
type Category int

const (
	CategoryUnset Category = iota
	CategoryBelow85
	Category85To87Half
	Category87HalfTo90
	Category90To94
	Category94AndAbove
)

// Categorize maps an attendance percentage to its severity band.
func Categorize(attPercent float64) Category {
	switch {
	case attPercent < 85:
		return CategoryBelow85
	case attPercent < 87.5:
		return Category85To87Half
	case attPercent < 90:
		return Category87HalfTo90
	case attPercent < 94:
		return Category90To94
	default:
		return Category94AndAbove
	}
}

// String returns the report label for the category.
func (c Category) String() string {
	switch c {
	case CategoryBelow85:
		return "Below 85"
	case Category85To87Half:
		return "85 to below 87.5"
	case Category87HalfTo90:
		return "87.5 to below 90"
	case Category90To94:
		return "90 to below 94"
	case Category94AndAbove:
		return "94 and above"
	default:
		return ""
	}
}
