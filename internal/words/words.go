// Package words holds the string-set helpers shared by the learners: length-lex
// ordering, prefix and suffix closures, and sample validation.
package words

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/geange/inferrer/automaton"
)

var ErrOverlappingExamples = errors.New("positive and negative examples overlap")

// Compare is automaton.CompareWords.
func Compare(a, b string) int {
	return automaton.CompareWords(a, b)
}

// Sort sorts words in place in length-lex order.
func Sort(words []string) {
	slices.SortFunc(words, Compare)
}

// Set is an unordered set of words.
type Set map[string]struct{}

func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s Set) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

func (s Set) Remove(w string) {
	delete(s, w)
}

func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in length-lex order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	Sort(out)
	return out
}

// Prefixes returns every prefix of every word in length-lex order. The empty word is
// always included, even for no words.
func Prefixes(words ...string) []string {
	set := NewSet("")
	for _, w := range words {
		runes := []rune(w)
		for i := 0; i <= len(runes); i++ {
			set.Add(string(runes[:i]))
		}
	}
	return set.Sorted()
}

// Suffixes returns every suffix of every word in length-lex order. The empty word is
// always included, even for no words.
func Suffixes(words ...string) []string {
	set := NewSet("")
	for _, w := range words {
		runes := []rune(w)
		for i := 0; i <= len(runes); i++ {
			set.Add(string(runes[i:]))
		}
	}
	return set.Sorted()
}

// MaxLen is the length in characters of the longest word.
func MaxLen(words ...string) int {
	n := 0
	for _, w := range words {
		n = max(n, utf8.RuneCountInString(w))
	}
	return n
}

// Validate checks that pos and neg are disjoint and, when alphabet is non-empty, that
// every word is spelled over it.
func Validate(alphabet automaton.Alphabet, pos, neg []string) error {
	p := NewSet(pos...)
	for _, w := range neg {
		if p.Has(w) {
			return fmt.Errorf("%w: %q", ErrOverlappingExamples, w)
		}
	}
	if alphabet.Len() == 0 {
		return nil
	}
	for _, w := range append(slices.Clone(pos), neg...) {
		if !alphabet.ContainsWord(w) {
			return fmt.Errorf("%w: word %q over %s", automaton.ErrSymbolNotInAlphabet, w, alphabet)
		}
	}
	return nil
}
