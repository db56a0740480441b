package automaton

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func MakeEmpty(alphabet Alphabet) *DFA {
	a := NewDFA(alphabet)
	a.CreateState()
	return a
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func MakeEmptyString(alphabet Alphabet) *DFA {
	a := NewDFA(alphabet)
	s := a.CreateState()
	a.SetAccept(s, true)
	return a
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over the alphabet.
func MakeAnyString(alphabet Alphabet) *DFA {
	a := NewDFA(alphabet)
	s := a.CreateState()
	a.SetAccept(s, true)
	for _, r := range alphabet.symbols {
		_ = a.AddTransition(s, r, s)
	}
	return a
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func MakeString(alphabet Alphabet, s string) (*DFA, error) {
	a := NewDFA(alphabet)
	state := a.CreateLabeledState("")
	prefix := make([]rune, 0, len(s))
	for _, r := range s {
		prefix = append(prefix, r)
		next := a.CreateLabeledState(string(prefix))
		if err := a.AddTransition(state, r, next); err != nil {
			return nil, err
		}
		state = next
	}
	a.SetAccept(state, true)
	return a, nil
}
