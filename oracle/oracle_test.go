package oracle

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/inferrer/automaton"
)

var ab = automaton.MustAlphabet("a", "b")

// oddLength accepts a^n for odd n, built with four states so it is not minimal.
func oddLength(t *testing.T) *automaton.DFA {
	d := automaton.NewDFA(automaton.MustAlphabet("a"))
	for i := 0; i < 4; i++ {
		d.CreateState()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, d.AddTransition(i, 'a', (i+1)%4))
	}
	d.SetAccept(1, true)
	d.SetAccept(3, true)
	return d
}

func contains101(t *testing.T) *automaton.DFA {
	d := automaton.NewDFA(automaton.MustAlphabet("0", "1"))
	for i := 0; i < 4; i++ {
		d.CreateState()
	}
	next := [][2]int{{0, 1}, {2, 1}, {0, 3}, {3, 3}}
	for q, n := range next {
		require.NoError(t, d.AddTransition(q, '0', n[0]))
		require.NoError(t, d.AddTransition(q, '1', n[1]))
	}
	d.SetAccept(3, true)
	return d
}

func TestPassive(t *testing.T) {
	p := NewPassive([]string{"aa", "a"}, []string{"b", ""})

	assert.True(t, p.MembershipQuery("a"))
	assert.False(t, p.MembershipQuery("b"))
	assert.False(t, p.MembershipQuery("ab"), "unknown words are outside the language")

	all := automaton.MakeAnyString(ab)
	w, ok := p.EquivalenceQuery(all)
	assert.False(t, ok)
	assert.Equal(t, "", w)

	w, ok = p.EquivalenceQuery(all)
	assert.False(t, ok)
	assert.Equal(t, "b", w)

	// every misclassified example has been reported once
	_, ok = p.EquivalenceQuery(all)
	assert.True(t, ok)
}

func TestPassivePositivesFirst(t *testing.T) {
	p := NewPassive([]string{"ab"}, []string{""})
	w, ok := p.EquivalenceQuery(automaton.MakeEmptyString(ab))
	assert.False(t, ok)
	assert.Equal(t, "ab", w)
}

func TestReference(t *testing.T) {
	target := contains101(t)
	r := NewReference(target)
	assert.Equal(t, 4, r.Target().NumStates())

	assert.True(t, r.MembershipQuery("0101"))
	assert.False(t, r.MembershipQuery("1001"))

	w, ok := r.EquivalenceQuery(automaton.MakeEmpty(target.Alphabet()))
	assert.False(t, ok)
	assert.Equal(t, "101", w)

	w, ok = r.EquivalenceQuery(automaton.MakeAnyString(target.Alphabet()))
	assert.False(t, ok)
	assert.Equal(t, "", w)

	_, ok = r.EquivalenceQuery(target)
	assert.True(t, ok)
}

func TestActive(t *testing.T) {
	target := oddLength(t)
	a := NewActive(target)

	assert.True(t, a.MembershipQuery("aaa"))
	assert.False(t, a.MembershipQuery("aaaa"))

	onlyA, err := automaton.MakeString(target.Alphabet(), "a")
	require.NoError(t, err)

	w, ok := a.EquivalenceQuery(onlyA)
	assert.False(t, ok)
	assert.Equal(t, "aaa", w)

	w, ok = a.EquivalenceQuery(onlyA)
	assert.False(t, ok)
	assert.Equal(t, "aaaaa", w, "a counterexample is never returned twice")

	_, ok = a.EquivalenceQuery(target)
	assert.True(t, ok)
}

func TestActiveBoundedSearch(t *testing.T) {
	alphabet := automaton.MustAlphabet("a")
	target := automaton.MakeAnyString(alphabet)

	// accepts every a^n except a^200
	hypothesis := automaton.NewDFA(alphabet)
	for i := 0; i <= 201; i++ {
		hypothesis.CreateState()
		hypothesis.SetAccept(i, i != 200)
	}
	for i := 0; i < 201; i++ {
		require.NoError(t, hypothesis.AddTransition(i, 'a', i+1))
	}
	require.NoError(t, hypothesis.AddTransition(201, 'a', 201))

	_, ok := NewActive(target).EquivalenceQuery(hypothesis)
	assert.True(t, ok, "the self-loop bound stops the search long before a^200")

	w, ok := NewReference(target).EquivalenceQuery(hypothesis)
	assert.False(t, ok)
	assert.Equal(t, strings.Repeat("a", 200), w)
}

func TestInstrumented(t *testing.T) {
	reg := prometheus.NewRegistry()
	target := contains101(t)
	o, err := Instrument(NewReference(target), reg, "lstar")
	require.NoError(t, err)

	o.MembershipQuery("1")
	o.MembershipQuery("101")
	_, ok := o.EquivalenceQuery(automaton.MakeEmpty(target.Alphabet()))
	require.False(t, ok)
	_, ok = o.EquivalenceQuery(target)
	require.True(t, ok)
	_, _ = o.EquivalenceQuery(target)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.MembershipQueries()))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.EquivalenceQueries("counterexample")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.EquivalenceQueries("satisfied")))

	_, err = Instrument(NewReference(target), reg, "lstar")
	assert.Error(t, err, "duplicate registration")

	_, err = Instrument(NewReference(target), reg, "nlstar")
	assert.NoError(t, err)
}
