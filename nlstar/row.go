package nlstar

import (
	"github.com/bits-and-blooms/bitset"
)

// Row is the observation of one prefix: bit i is set iff prefix·experiment(i) is in
// the language.
type Row struct {
	Prefix string
	cells  *bitset.BitSet
}

func NewRow(prefix string) *Row {
	return &Row{Prefix: prefix, cells: bitset.New(0)}
}

// Set records the answer for experiment i.
func (r *Row) Set(i int, accepted bool) {
	r.cells.SetTo(uint(i), accepted)
}

func (r *Row) Get(i int) bool {
	return r.cells.Test(uint(i))
}

// CoveredBy reports whether every experiment true in r is also true in s.
func (r *Row) CoveredBy(s *Row) bool {
	return s.cells.IsSuperSet(r.cells)
}

// StrictlyCoveredBy reports r ⊑ s with different contents.
func (r *Row) StrictlyCoveredBy(s *Row) bool {
	return r.CoveredBy(s) && !s.CoveredBy(r)
}

// Equal compares contents only.
func (r *Row) Equal(s *Row) bool {
	return r.CoveredBy(s) && s.CoveredBy(r)
}

func (r *Row) IsZero() bool {
	return r.cells.None()
}

// Key identifies the row contents.
func (r *Row) Key() string {
	return r.cells.String()
}

// Join is the pointwise OR of rows. The join of no rows is the all-false row.
func Join(rows ...*Row) *Row {
	joined := NewRow("")
	for _, r := range rows {
		joined.cells.InPlaceUnion(r.cells)
	}
	return joined
}

// IsComposed reports whether r is the join of the rows among others it strictly
// covers. The all-false row is always composed.
func (r *Row) IsComposed(others []*Row) bool {
	var below []*Row
	for _, s := range others {
		if s.StrictlyCoveredBy(r) {
			below = append(below, s)
		}
	}
	return Join(below...).Equal(r)
}
