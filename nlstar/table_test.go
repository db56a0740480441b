package nlstar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/inferrer/automaton"
)

// endsWithA is the language Σ*a over {a, b}.
func endsWithA(w string) bool {
	return strings.HasSuffix(w, "a")
}

func TestNewTable(t *testing.T) {
	tbl := NewTable(automaton.MustAlphabet("a", "b"), endsWithA)

	assert.Equal(t, []string{""}, tbl.Upper())
	assert.Equal(t, []string{"a", "b"}, tbl.Lower())
	assert.Equal(t, []string{""}, tbl.Experiments())
	assert.False(t, tbl.Row("").Get(0))
	assert.True(t, tbl.Row("a").Get(0))
	assert.False(t, tbl.Row("b").Get(0))
}

func TestTableClosing(t *testing.T) {
	tbl := NewTable(automaton.MustAlphabet("a", "b"), endsWithA)

	// row(ε) is zero, hence composed; row(a) is a new prime.
	assert.False(t, tbl.IsPrime(""))
	assert.True(t, tbl.IsPrime("a"))
	assert.False(t, tbl.IsPrime("b"))
	assert.Empty(t, tbl.UpperPrimes())
	u, closed := tbl.IsClosed()
	require.False(t, closed)
	assert.Equal(t, "a", u)

	tbl.AddUpper("a")
	assert.Equal(t, []string{"", "a"}, tbl.Upper())
	assert.Equal(t, []string{"b", "aa", "ab"}, tbl.Lower())
	assert.Equal(t, []string{"a"}, tbl.UpperPrimes())

	_, closed = tbl.IsClosed()
	assert.True(t, closed)
	_, consistent := tbl.IsConsistent()
	assert.True(t, consistent)
}

func TestTableAddExperimentFillsRows(t *testing.T) {
	tbl := NewTable(automaton.MustAlphabet("a", "b"), endsWithA)
	tbl.AddUpper("a")

	assert.True(t, tbl.AddExperiment("a"))
	assert.False(t, tbl.AddExperiment("a"))
	assert.Equal(t, []string{"", "a"}, tbl.Experiments())
	for _, u := range append(tbl.Upper(), tbl.Lower()...) {
		assert.True(t, tbl.Row(u).Get(1), "row %q", u)
	}
	assert.Contains(t, tbl.String(), "U ε | 0 1")
}

func TestTableInconsistency(t *testing.T) {
	// L = {b}: rows ε and a agree on ε, but b is accepted while ab is not.
	inL := func(w string) bool { return w == "b" }
	tbl := NewTable(automaton.MustAlphabet("a", "b"), inL)
	tbl.AddUpper("a")

	inc, consistent := tbl.IsConsistent()
	require.False(t, consistent)
	assert.Equal(t, 'b', inc.Symbol)
	assert.Equal(t, "", inc.Suffix)
	assert.Equal(t, "a", inc.Upper)
	assert.Equal(t, "", inc.Covered)
}
