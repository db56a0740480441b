package oracle

import (
	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/words"
)

// Passive is the closed-world oracle over a finite sample: a word is in the language
// iff it is a positive example. Equivalence checks the hypothesis against the sample
// only and so may report satisfaction on a hypothesis that is wrong elsewhere.
type Passive struct {
	pos     words.Set
	posList []string
	negList []string

	// examples already returned as counterexamples
	marked words.Set
}

func NewPassive(pos, neg []string) *Passive {
	p := &Passive{
		pos:     words.NewSet(pos...),
		posList: words.NewSet(pos...).Sorted(),
		negList: words.NewSet(neg...).Sorted(),
		marked:  words.NewSet(),
	}
	return p
}

func (p *Passive) MembershipQuery(word string) bool {
	return p.pos.Has(word)
}

// EquivalenceQuery scans the positives, then the negatives, in length-lex order and
// returns the first example the hypothesis misclassifies. Each example is returned at
// most once, so a run against a Passive oracle always terminates.
func (p *Passive) EquivalenceQuery(hypothesis automaton.FSA) (string, bool) {
	for _, w := range p.posList {
		if !p.marked.Has(w) && !hypothesis.Accepts(w) {
			p.marked.Add(w)
			return w, false
		}
	}
	for _, w := range p.negList {
		if !p.marked.Has(w) && hypothesis.Accepts(w) {
			p.marked.Add(w)
			return w, false
		}
	}
	return "", true
}
