package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geange/inferrer/automaton"
)

// newTable builds red {ε}, blue {a, b}, experiments {ε, a} filled from accept.
func newTable(accept func(string) bool) *ObservationTable {
	t := New(automaton.MustAlphabet("a", "b"))
	t.AddRed("")
	t.Extend("")
	t.AddExperiment("")
	t.AddExperiment("a")
	for _, h := range t.Holes() {
		t.Put(h.Prefix, h.Suffix, EntryOf(accept(h.Prefix+h.Suffix)))
	}
	return t
}

func TestRowsAndPrefixes(t *testing.T) {
	tbl := newTable(func(w string) bool { return len(w)%2 == 1 })

	assert.Equal(t, []string{""}, tbl.Red())
	assert.Equal(t, []string{"a", "b"}, tbl.Blue())
	assert.Equal(t, []string{"", "a", "b"}, tbl.Prefixes())
	assert.Equal(t, []string{"", "a"}, tbl.Experiments())
	assert.Equal(t, []Entry{Reject, Accept}, tbl.Row(""))
	assert.Equal(t, "10", tbl.RowKey("a"))
	assert.True(t, tbl.RowsEqual("a", "b"))
	assert.Empty(t, tbl.Holes())

	assert.False(t, tbl.AddExperiment("a"))
	tbl.AddRed("a")
	assert.True(t, tbl.IsRed("a"))
	assert.False(t, tbl.IsBlue("a"))
	tbl.AddBlue("a")
	assert.True(t, tbl.IsRed("a"))
}

func TestIsClosed(t *testing.T) {
	tbl := newTable(func(w string) bool { return len(w)%2 == 1 })

	u, closed := tbl.IsClosed()
	assert.False(t, closed)
	assert.Equal(t, "a", u)

	tbl.AddRed("a")
	tbl.Extend("a")
	for _, h := range tbl.Holes() {
		tbl.Put(h.Prefix, h.Suffix, EntryOf(len(h.Prefix+h.Suffix)%2 == 1))
	}
	_, closed = tbl.IsClosed()
	assert.True(t, closed)
}

func TestIsConsistent(t *testing.T) {
	// words ending in b: ε and a share a row on {ε}, but εb and ab do not
	endsInB := func(w string) bool { return len(w) > 0 && w[len(w)-1] == 'b' }
	tbl := New(automaton.MustAlphabet("a", "b"))
	tbl.AddRed("")
	tbl.AddRed("a")
	tbl.Extend("")
	tbl.Extend("a")
	tbl.AddExperiment("")
	for _, h := range tbl.Holes() {
		tbl.Put(h.Prefix, h.Suffix, EntryOf(endsInB(h.Prefix+h.Suffix)))
	}
	_, consistent := tbl.IsConsistent()
	assert.True(t, consistent)

	// force aa away from a
	tbl.Put("aa", "", Accept)
	inc, consistent := tbl.IsConsistent()
	assert.False(t, consistent)
	assert.Equal(t, Inconsistency{First: "", Second: "a", Symbol: 'a', Suffix: ""}, inc)
	assert.Equal(t, "a", inc.Experiment())
	assert.False(t, tbl.IsClosedAndConsistent())
}

func TestCompatibility(t *testing.T) {
	tbl := New(automaton.MustAlphabet("a"))
	tbl.AddRed("")
	tbl.AddRed("a")
	tbl.AddBlue("aa")
	tbl.AddExperiment("")
	tbl.AddExperiment("a")

	tbl.Put("", "", Reject)
	tbl.Put("a", "", Accept)
	tbl.Put("aa", "a", Accept)

	// no shared known cell with ε
	assert.False(t, tbl.ObviouslyDifferent("", "aa"))
	r, ok := tbl.FindCompatibleRow("aa")
	assert.True(t, ok)
	assert.Equal(t, "", r)

	tbl.Put("aa", "", Accept)
	r, ok = tbl.FindCompatibleRow("aa")
	assert.True(t, ok)
	assert.Equal(t, "a", r)

	tbl.Put("a", "a", Reject)
	_, ok = tbl.FindCompatibleRow("aa")
	assert.False(t, ok)

	assert.Equal(t, []Cell{{Prefix: "", Suffix: "a"}}, tbl.Holes())
}

func TestEntry(t *testing.T) {
	assert.Equal(t, Accept, EntryOf(true))
	assert.Equal(t, Reject, EntryOf(false))
	assert.False(t, Unknown.Known())
	assert.Equal(t, "?", Unknown.String())
}

func TestString(t *testing.T) {
	tbl := newTable(func(w string) bool { return w == "a" })
	assert.Equal(t, "\tε\ta\t\nε\t0\t1\na\t1\t0\nb\t0\t0\n", tbl.String())
}
