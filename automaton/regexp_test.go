package automaton

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRegexMatchesDFA(t *testing.T, d *DFA, maxLen int) {
	t.Helper()
	expr := d.ToRegex()
	re, err := regexp.Compile("^(?:" + expr + ")$")
	require.NoError(t, err, "regex %q", expr)
	for _, w := range allWords(d.Alphabet(), maxLen) {
		assert.Equal(t, d.Accepts(w), re.MatchString(w), "word %q against %q", w, expr)
	}
}

func TestToRegex(t *testing.T) {
	t.Run("any string", func(t *testing.T) {
		d := MakeAnyString(MustAlphabet("a", "b"))
		assert.Equal(t, "(a|b)*", d.ToRegex())
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "()", MakeEmptyString(MustAlphabet("a")).ToRegex())
	})

	t.Run("empty language", func(t *testing.T) {
		assert.Equal(t, "", MakeEmpty(MustAlphabet("a")).ToRegex())
		assert.Nil(t, MakeEmpty(MustAlphabet("a")).ToRegExp())
	})

	t.Run("single word", func(t *testing.T) {
		d, err := MakeString(MustAlphabet("a", "b"), "abb")
		require.NoError(t, err)
		assert.Equal(t, "abb", d.ToRegex())
	})

	t.Run("odd length", func(t *testing.T) {
		m := oddCycle(t).Minimize()
		assert.Equal(t, "(aa)*a", m.ToRegex())
	})

	t.Run("metacharacters are escaped", func(t *testing.T) {
		d := MakeAnyString(MustAlphabet("*", "."))
		assertRegexMatchesDFA(t, d, 3)
		assert.Equal(t, `(\*|\.)*`, d.ToRegex())
	})

	t.Run("round trip", func(t *testing.T) {
		for _, d := range []*DFA{contains101(t), oddCycle(t), Determinize(endsWith01(t)), MakeEmptyString(MustAlphabet("x"))} {
			assertRegexMatchesDFA(t, d, 7)
		}
	})
}

func TestRegExpFolding(t *testing.T) {
	a, b := makeChar('a'), makeChar('b')

	assert.Nil(t, makeConcatenation(a, nil))
	assert.Equal(t, "a", makeUnion(nil, a).String())
	assert.Equal(t, "a", makeUnion(a, makeChar('a')).String())
	assert.Equal(t, "ab", makeConcatenation(makeConcatenation(makeEmpty(), a), b).String())
	assert.Equal(t, "()", makeRepeat(nil).String())
	assert.Equal(t, "a*", makeRepeat(makeRepeat(a)).String())
	assert.Equal(t, "a*", makeRepeat(makeUnion(a, makeEmpty())).String())
	assert.Equal(t, "(a|b)b", makeConcatenation(makeUnion(a, b), b).String())
	assert.Equal(t, "(ab)*", makeRepeat(makeConcatenation(a, b)).String())
	assert.Equal(t, "a|()", makeUnion(a, makeEmpty()).String())
}
