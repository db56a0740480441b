package words

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geange/inferrer/automaton"
)

func TestPrefixesAndSuffixes(t *testing.T) {
	assert.Equal(t, []string{"", "a", "ab", "abc"}, Prefixes("abc"))
	assert.Equal(t, []string{"", "c", "bc", "abc"}, Suffixes("abc"))
	assert.Equal(t, []string{"", "a", "b", "ab", "ba"}, Prefixes("ab", "ba"))
	assert.Equal(t, []string{""}, Suffixes())
	assert.Equal(t, []string{""}, Prefixes())
	assert.Equal(t, []string{""}, Suffixes(""))
}

func TestSet(t *testing.T) {
	s := NewSet("bb", "a", "ab")
	assert.Equal(t, []string{"a", "ab", "bb"}, s.Sorted())
	assert.True(t, s.Has("ab"))

	s.Remove("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, []string{"ab", "bb"}, s.Sorted())
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, NewSet().Sorted())
}

func TestMaxLen(t *testing.T) {
	assert.Equal(t, 0, MaxLen())
	assert.Equal(t, 3, MaxLen("a", "λλλ", "bb"))
}

func TestValidate(t *testing.T) {
	alphabet := automaton.MustAlphabet("a", "b")

	assert.NoError(t, Validate(alphabet, []string{"a", "ab"}, []string{"", "b"}))
	assert.ErrorIs(t, Validate(alphabet, []string{"a"}, []string{"a"}), ErrOverlappingExamples)
	assert.ErrorIs(t, Validate(alphabet, []string{"ac"}, nil), automaton.ErrSymbolNotInAlphabet)
	assert.NoError(t, Validate(automaton.Alphabet{}, []string{"xyz"}, nil))
}
