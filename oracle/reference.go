package oracle

import (
	"github.com/geange/inferrer/automaton"
)

// Reference answers exactly for a known target automaton. Equivalence queries
// search the product of target and hypothesis, so every returned counterexample is a
// shortest one and satisfaction means the languages are equal.
type Reference struct {
	target *automaton.DFA
	run    *automaton.RunAutomaton
}

func NewReference(target automaton.FSA) *Reference {
	t := target.ToDFA().Minimize()
	return &Reference{target: t, run: automaton.NewRunAutomaton(t)}
}

func (r *Reference) Target() *automaton.DFA {
	return r.target
}

func (r *Reference) MembershipQuery(word string) bool {
	return r.run.Run(word)
}

func (r *Reference) EquivalenceQuery(hypothesis automaton.FSA) (string, bool) {
	w, differ := automaton.Distinguish(r.target, hypothesis.ToDFA())
	return w, !differ
}
