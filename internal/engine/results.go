package engine

import "github.com/districtops/atttrack/internal/record"

// ResultSet holds the per-student result records for one run, keyed by
// student number and iterable in insertion order. Insertion order follows
// the current-week snapshot, which keeps every downstream report
// deterministic for a given input order.
type ResultSet struct {
	byID  map[int64]*record.Result
	order []int64
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{byID: make(map[int64]*record.Result)}
}

// Add inserts r, replacing any existing record with the same student number
// without disturbing its position.
func (rs *ResultSet) Add(r *record.Result) {
	if _, ok := rs.byID[r.StudentNumber]; !ok {
		rs.order = append(rs.order, r.StudentNumber)
	}
	rs.byID[r.StudentNumber] = r
}

// Get returns the record for a student number.
func (rs *ResultSet) Get(id int64) (*record.Result, bool) {
	r, ok := rs.byID[id]
	return r, ok
}

// All returns the records in insertion order.
func (rs *ResultSet) All() []*record.Result {
	out := make([]*record.Result, 0, len(rs.order))
	for _, id := range rs.order {
		out = append(out, rs.byID[id])
	}
	return out
}

// Len returns the number of records.
func (rs *ResultSet) Len() int { return len(rs.order) }

// Filter returns a new ResultSet containing, in order, the records keep
// accepts.
func (rs *ResultSet) Filter(keep func(*record.Result) bool) *ResultSet {
	out := NewResultSet()
	for _, r := range rs.All() {
		if keep(r) {
			out.Add(r)
		}
	}
	return out
}
