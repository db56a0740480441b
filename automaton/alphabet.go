package automaton

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Alphabet is an immutable, sorted set of single-character symbols. The zero value is
// the empty alphabet.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from string symbols. Every symbol must be exactly one
// character long.
func NewAlphabet(symbols ...string) (Alphabet, error) {
	runes := make([]rune, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			return Alphabet{}, ErrEmptySymbol
		}
		if utf8.RuneCountInString(s) != 1 {
			return Alphabet{}, fmt.Errorf("%w: %q", ErrMultiRuneSymbol, s)
		}
		r, _ := utf8.DecodeRuneInString(s)
		runes = append(runes, r)
	}
	return NewAlphabetRunes(runes...), nil
}

// NewAlphabetRunes builds an alphabet from runes, dropping duplicates.
func NewAlphabetRunes(runes ...rune) Alphabet {
	symbols := slices.Clone(runes)
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)
	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		index[r] = i
	}
	return Alphabet{symbols: symbols, index: index}
}

// AlphabetOf returns the alphabet of every character used in words.
func AlphabetOf(words ...string) Alphabet {
	var runes []rune
	for _, w := range words {
		runes = append(runes, []rune(w)...)
	}
	return NewAlphabetRunes(runes...)
}

// MustAlphabet is like NewAlphabet but panics on error. Intended for tests and
// package-level values.
func MustAlphabet(symbols ...string) Alphabet {
	a, err := NewAlphabet(symbols...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Alphabet) Len() int {
	return len(a.symbols)
}

// Symbols returns the symbols in ascending order.
func (a Alphabet) Symbols() []rune {
	return slices.Clone(a.symbols)
}

func (a Alphabet) Symbol(i int) rune {
	return a.symbols[i]
}

// IndexOf returns the position of r in the sorted alphabet.
func (a Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// ContainsWord reports whether every character of w is in the alphabet.
func (a Alphabet) ContainsWord(w string) bool {
	for _, r := range w {
		if !a.Contains(r) {
			return false
		}
	}
	return true
}

func (a Alphabet) Equal(other Alphabet) bool {
	return slices.Equal(a.symbols, other.symbols)
}

func (a Alphabet) String() string {
	parts := make([]string, len(a.symbols))
	for i, r := range a.symbols {
		parts[i] = string(r)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
