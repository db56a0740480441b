// Package oracle provides the query answerers for the active learners. An Oracle answers
// membership queries and equivalence queries against some target language.
package oracle

import (
	"errors"

	"github.com/geange/inferrer/automaton"
)

var ErrNilOracle = errors.New("active learner requires an oracle")

// Oracle is a (possibly only approximate) minimally adequate oracle for a regular language.
type Oracle interface {
	// MembershipQuery reports whether word is in the target language. Answers must not
	// change during a run.
	MembershipQuery(word string) bool

	// EquivalenceQuery returns a word on which hypothesis and target disagree, or
	// satisfied = true when none is found.
	EquivalenceQuery(hypothesis automaton.FSA) (counterexample string, satisfied bool)
}
