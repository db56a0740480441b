// Package nlstar implements NL*, the extension of Angluin-style learning to residual
// finite-state automata. Rows are compared by covering rather than equality, and only
// prime rows, those that are not the join of other rows, become states, so the
// learned NFA can be exponentially smaller than the minimal DFA.
package nlstar

import (
	"github.com/sirupsen/logrus"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/logging"
	"github.com/geange/inferrer/internal/words"
	"github.com/geange/inferrer/oracle"
)

type options struct {
	logger logrus.FieldLogger
}

type Option func(*options)

// WithLogger sets the sink for progress logs. The default discards them.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

type NLStar struct {
	alphabet automaton.Alphabet
	oracle   oracle.Oracle
	logger   logrus.FieldLogger

	answers map[string]bool
}

func New(alphabet automaton.Alphabet, o oracle.Oracle, opts ...Option) (*NLStar, error) {
	if o == nil {
		return nil, oracle.ErrNilOracle
	}
	opt := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(opt)
	}
	return &NLStar{
		alphabet: alphabet,
		oracle:   o,
		logger:   opt.logger.WithField("learner", "nlstar"),
	}, nil
}

// Learn runs until the oracle accepts a hypothesis and returns it.
func (l *NLStar) Learn() *automaton.NFA {
	l.answers = make(map[string]bool)
	t := NewTable(l.alphabet, l.membership)

	for round := 1; ; round++ {
		l.closeAndMakeConsistent(t)

		hypothesis := l.buildHypothesis(t)
		l.logger.WithFields(logrus.Fields{
			"round":  round,
			"states": hypothesis.NumStates(),
		}).Debug("submitting equivalence query")

		counterexample, satisfied := l.oracle.EquivalenceQuery(hypothesis)
		if satisfied {
			l.logger.WithField("states", hypothesis.NumStates()).Info("learned")
			return hypothesis
		}
		l.logger.WithField("counterexample", counterexample).Debug("oracle returned counterexample")
		for _, s := range words.Suffixes(counterexample) {
			t.AddExperiment(s)
		}
	}
}

func (l *NLStar) closeAndMakeConsistent(t *Table) {
	for {
		if u, closed := t.IsClosed(); !closed {
			l.logger.WithField("prefix", u).Debug("promoting lower row")
			t.AddUpper(u)
			continue
		}
		if inc, consistent := t.IsConsistent(); !consistent {
			l.logger.WithFields(logrus.Fields{
				"symbol": string(inc.Symbol),
				"suffix": inc.Suffix,
			}).Debug("making table consistent")
			for _, b := range l.alphabet.Symbols() {
				t.AddExperiment(string(b) + inc.Suffix)
			}
			continue
		}
		return
	}
}

func (l *NLStar) membership(w string) bool {
	if v, ok := l.answers[w]; ok {
		return v
	}
	v := l.oracle.MembershipQuery(w)
	l.answers[w] = v
	return v
}

// buildHypothesis makes one state per distinct prime upper row. The start states are
// those covered by row(ε), and u -a-> r for every state r covered by row(u·a).
func (l *NLStar) buildHypothesis(t *Table) *automaton.NFA {
	nfa := automaton.NewNFA(l.alphabet)
	primes := t.UpperPrimes()
	state := make([]int, len(primes))
	eps := t.Row("")
	for i, u := range primes {
		state[i] = nfa.CreateLabeledState(u)
		r := t.Row(u)
		nfa.SetStart(state[i], r.CoveredBy(eps))
		nfa.SetAccept(state[i], r.Get(0))
	}

	for i, u := range primes {
		for _, a := range l.alphabet.Symbols() {
			ua := t.Row(u + string(a))
			for j, v := range primes {
				if t.Row(v).CoveredBy(ua) {
					_ = nfa.AddTransition(state[i], a, state[j])
				}
			}
		}
	}
	return nfa.RenameStates()
}
