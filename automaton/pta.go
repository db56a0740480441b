package automaton

import (
	"fmt"
	"slices"
)

// BuildPTA builds the prefix tree acceptor of a sample: one state per prefix of a
// positive or negative word, labelled with that prefix. Positive words end in accept
// states, negative words in reject states. States are created in length-lex order of
// their prefixes, so the root is state 0.
func BuildPTA(alphabet Alphabet, pos, neg []string) (*DFA, error) {
	words := append(slices.Clone(pos), neg...)
	slices.SortFunc(words, CompareWords)

	pta := NewDFA(alphabet)
	pta.CreateLabeledState("")

	// length-lex order guarantees every proper prefix exists before the word itself
	byPrefix := map[string]int{"": 0}
	for _, w := range words {
		if !alphabet.ContainsWord(w) {
			return nil, fmt.Errorf("%w: word %q", ErrSymbolNotInAlphabet, w)
		}
		state := 0
		var prefix []rune
		for _, r := range w {
			prefix = append(prefix, r)
			p := string(prefix)
			next, ok := byPrefix[p]
			if !ok {
				next = pta.CreateLabeledState(p)
				byPrefix[p] = next
				_ = pta.AddTransition(state, r, next)
			}
			state = next
		}
	}

	for _, w := range pos {
		pta.SetAccept(pta.Reach(w), true)
	}
	for _, w := range neg {
		pta.SetReject(pta.Reach(w), true)
	}
	return pta, nil
}

// CompareWords orders words by length in characters, then lexicographically.
func CompareWords(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	switch {
	case la < lb:
		return -1
	case la > lb:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
