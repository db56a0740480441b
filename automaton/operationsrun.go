package automaton

// RunAutomaton is a compiled, read-only matcher for a DFA: transitions are held in
// one dense table indexed by state and symbol position.
type RunAutomaton struct {
	alphabet    Alphabet
	size        int
	initial     int
	accept      []bool
	transitions []int
}

// NewRunAutomaton compiles a; later changes to a are not seen.
func NewRunAutomaton(a *DFA) *RunAutomaton {
	r := &RunAutomaton{
		alphabet:    a.alphabet,
		size:        a.alphabet.Len(),
		initial:     a.startOrDead(),
		accept:      make([]bool, a.NumStates()),
		transitions: append([]int(nil), a.transitions...),
	}
	for q := range r.accept {
		r.accept[q] = a.IsAccept(q)
	}
	return r
}

// Step Returns the state obtained by reading the given symbol from the given state,
// or -1.
func (r *RunAutomaton) Step(state int, symbol rune) int {
	i, ok := r.alphabet.IndexOf(symbol)
	if !ok || state < 0 {
		return -1
	}
	return r.transitions[state*r.size+i]
}

// Run Returns true if the given string is accepted by this automaton.
func (r *RunAutomaton) Run(s string) bool {
	p := r.initial
	for _, c := range s {
		if p = r.Step(p, c); p == -1 {
			return false
		}
	}
	return p >= 0 && r.accept[p]
}

func (r *RunAutomaton) IsAccept(state int) bool {
	return r.accept[state]
}
