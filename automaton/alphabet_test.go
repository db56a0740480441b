package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlphabet(t *testing.T) {
	t.Run("sorted and unique", func(t *testing.T) {
		a, err := NewAlphabet("b", "a", "b")
		require.NoError(t, err)
		assert.Equal(t, []rune{'a', 'b'}, a.Symbols())
		assert.Equal(t, 2, a.Len())
		assert.Equal(t, "{a, b}", a.String())
	})

	t.Run("empty symbol", func(t *testing.T) {
		_, err := NewAlphabet("a", "")
		assert.ErrorIs(t, err, ErrEmptySymbol)
	})

	t.Run("multi character symbol", func(t *testing.T) {
		_, err := NewAlphabet("ab")
		assert.ErrorIs(t, err, ErrMultiRuneSymbol)
	})

	t.Run("unicode", func(t *testing.T) {
		a, err := NewAlphabet("λ", "µ")
		require.NoError(t, err)
		assert.True(t, a.ContainsWord("λµλ"))
		assert.False(t, a.ContainsWord("λa"))
	})
}

func TestAlphabetOf(t *testing.T) {
	a := AlphabetOf("bb", "abb", "")
	assert.True(t, a.Equal(MustAlphabet("a", "b")))

	i, ok := a.IndexOf('b')
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = a.IndexOf('c')
	assert.False(t, ok)
	assert.Equal(t, 0, AlphabetOf().Len())
}
