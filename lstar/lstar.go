// Package lstar implements Dana Angluin's L* algorithm, which learns the minimal DFA
// of a regular language from membership and equivalence queries.
//
// The learner keeps an observation table closed and consistent by asking membership
// queries, submits the DFA read off the table as an equivalence query, and adds every
// prefix of a counterexample to the table until the oracle is satisfied.
package lstar

import (
	"github.com/sirupsen/logrus"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/logging"
	"github.com/geange/inferrer/internal/words"
	"github.com/geange/inferrer/oracle"
	"github.com/geange/inferrer/table"
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

type LStar struct {
	alphabet automaton.Alphabet
	oracle   oracle.Oracle
	logger   logrus.FieldLogger

	// membership answers already obtained in this run
	answers map[string]bool
}

func New(alphabet automaton.Alphabet, o oracle.Oracle, opts ...Option) (*LStar, error) {
	if o == nil {
		return nil, oracle.ErrNilOracle
	}
	opt := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(opt)
	}
	return &LStar{
		alphabet: alphabet,
		oracle:   o,
		logger:   opt.logger.WithField("learner", "lstar"),
	}, nil
}

// Learn runs until the oracle accepts a hypothesis and returns it.
func (l *LStar) Learn() *automaton.DFA {
	l.answers = make(map[string]bool)
	t := l.initialise()

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
		l.addCounterexample(t, counterexample)
	}
}

func (l *LStar) initialise() *table.ObservationTable {
	t := table.New(l.alphabet)
	t.AddRed("")
	t.Extend("")
	t.AddExperiment("")
	l.fillHoles(t)
	return t
}

func (l *LStar) closeAndMakeConsistent(t *table.ObservationTable) {
	for {
		if u, closed := t.IsClosed(); !closed {
			l.logger.WithField("prefix", u).Debug("closing table")
			t.AddRed(u)
			t.Extend(u)
			l.fillHoles(t)
			continue
		}
		if inc, consistent := t.IsConsistent(); !consistent {
			l.logger.WithField("experiment", inc.Experiment()).Debug("making table consistent")
			t.AddExperiment(inc.Experiment())
			l.fillHoles(t)
			continue
		}
		return
	}
}

// addCounterexample makes every prefix of w red and their one-symbol extensions blue.
func (l *LStar) addCounterexample(t *table.ObservationTable, w string) {
	prefixes := words.Prefixes(w)
	for _, p := range prefixes {
		t.AddRed(p)
	}
	for _, p := range prefixes {
		t.Extend(p)
	}
	l.fillHoles(t)
}

func (l *LStar) fillHoles(t *table.ObservationTable) {
	for _, h := range t.Holes() {
		t.Put(h.Prefix, h.Suffix, table.EntryOf(l.membership(h.Prefix+h.Suffix)))
	}
}

func (l *LStar) membership(w string) bool {
	if v, ok := l.answers[w]; ok {
		return v
	}
	v := l.oracle.MembershipQuery(w)
	l.answers[w] = v
	return v
}

// buildHypothesis makes one state per distinct red row, represented by its least
// prefix. u -a-> the state whose row equals the row of u·a. The table must be closed.
func (l *LStar) buildHypothesis(t *table.ObservationTable) *automaton.DFA {
	dfa := automaton.NewDFA(l.alphabet)
	state := make(map[string]int)
	var reps []string
	for _, u := range t.Red() {
		key := t.RowKey(u)
		if _, ok := state[key]; ok {
			continue
		}
		state[key] = dfa.CreateLabeledState(u)
		reps = append(reps, u)
		if t.Get(u, "") == table.Accept {
			dfa.SetAccept(state[key], true)
		} else {
			dfa.SetReject(state[key], true)
		}
	}

	for _, u := range reps {
		for _, a := range l.alphabet.Symbols() {
			if target, ok := state[t.RowKey(u+string(a))]; ok {
				_ = dfa.AddTransition(state[t.RowKey(u)], a, target)
			}
		}
	}
	_ = dfa.SetStart(state[t.RowKey("")])
	return dfa.RenameStates()
}
