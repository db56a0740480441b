// Package gold implements E. Mark Gold's algorithm for identifying a DFA consistent
// with a finite sample. An observation table is built straight from the sample, its
// unknown cells are filled in by compatibility, and the table is read off as a DFA.
// Whenever that fails the prefix tree acceptor of the sample is returned instead.
package gold

import (
	"slices"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/logging"
	"github.com/geange/inferrer/internal/words"
	"github.com/geange/inferrer/table"
)

type options struct {
	logger   logrus.FieldLogger
	alphabet automaton.Alphabet
}

type Option func(*options)

// WithLogger sets the sink for progress logs. The default discards them.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithAlphabet fixes the alphabet instead of deriving it from the sample.
func WithAlphabet(alphabet automaton.Alphabet) Option {
	return func(o *options) {
		o.alphabet = alphabet
	}
}

type Gold struct {
	pos      words.Set
	neg      words.Set
	samples  []string
	alphabet automaton.Alphabet
	maxLen   int
	logger   logrus.FieldLogger
}

// New checks that pos and neg are disjoint.
func New(pos, neg []string, opts ...Option) (*Gold, error) {
	o := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(o)
	}
	if err := words.Validate(o.alphabet, pos, neg); err != nil {
		return nil, err
	}

	samples := append(slices.Clone(pos), neg...)
	alphabet := o.alphabet
	if alphabet.Len() == 0 {
		alphabet = automaton.AlphabetOf(samples...)
	}
	return &Gold{
		pos:      words.NewSet(pos...),
		neg:      words.NewSet(neg...),
		samples:  samples,
		alphabet: alphabet,
		maxLen:   words.MaxLen(samples...),
		logger:   o.logger.WithField("learner", "gold"),
	}, nil
}

// Learn returns a DFA that accepts every positive and rejects every negative example.
func (g *Gold) Learn() *automaton.DFA {
	t := g.buildTable()

	for {
		x, ok := g.obviouslyDifferentRow(t)
		if !ok {
			break
		}
		g.logger.WithField("prefix", x).Debug("promoted obviously different row")
		t.AddRed(x)
		t.Extend(x)
		g.fillFromSample(t)
	}

	if !g.fillHoles(t) {
		g.logger.Info("no compatible row, falling back to prefix tree acceptor")
		return g.pta()
	}

	dfa, ok := g.buildAutomaton(t)
	if !ok || !g.consistent(dfa) {
		g.logger.Info("table automaton inconsistent with sample, falling back to prefix tree acceptor")
		return g.pta()
	}
	g.logger.WithField("states", dfa.NumStates()).Info("learned")
	return dfa
}

// buildTable has red {ε}, blue = alphabet and every suffix of the sample as
// experiments.
func (g *Gold) buildTable() *table.ObservationTable {
	t := table.New(g.alphabet)
	t.AddRed("")
	t.Extend("")
	for _, e := range words.Suffixes(g.samples...) {
		t.AddExperiment(e)
	}
	g.fillFromSample(t)
	return t
}

func (g *Gold) fillFromSample(t *table.ObservationTable) {
	for _, h := range t.Holes() {
		w := h.Prefix + h.Suffix
		switch {
		case g.pos.Has(w):
			t.Put(h.Prefix, h.Suffix, table.Accept)
		case g.neg.Has(w):
			t.Put(h.Prefix, h.Suffix, table.Reject)
		}
	}
}

// obviouslyDifferentRow returns the least blue prefix, shorter than the longest
// example, that is obviously different from every red row.
func (g *Gold) obviouslyDifferentRow(t *table.ObservationTable) (string, bool) {
	red := t.Red()
	for _, x := range t.Blue() {
		if utf8.RuneCountInString(x) >= g.maxLen {
			continue
		}
		different := true
		for _, r := range red {
			if !t.ObviouslyDifferent(x, r) {
				different = false
				break
			}
		}
		if different {
			return x, true
		}
	}
	return "", false
}

// fillHoles copies what blue rows know into a compatible red row, sets the remaining
// red holes to accept, and completes every blue row from a compatible red row. It
// reports false when some blue row has no compatible red row.
func (g *Gold) fillHoles(t *table.ObservationTable) bool {
	exp := t.Experiments()
	for _, p := range t.Blue() {
		r, ok := t.FindCompatibleRow(p)
		if !ok {
			return false
		}
		for _, e := range exp {
			if v := t.Get(p, e); v.Known() {
				t.Put(r, e, v)
			}
		}
	}

	for _, r := range t.Red() {
		for _, e := range exp {
			if !t.Get(r, e).Known() {
				t.Put(r, e, table.Accept)
			}
		}
	}

	for _, p := range t.Blue() {
		r, ok := t.FindCompatibleRow(p)
		if !ok {
			return false
		}
		for _, e := range exp {
			if !t.Get(p, e).Known() {
				t.Put(p, e, t.Get(r, e))
			}
		}
	}
	return true
}

// buildAutomaton makes one state per red prefix. u -a-> r when r is the least red
// prefix whose row equals the row of u·a.
func (g *Gold) buildAutomaton(t *table.ObservationTable) (*automaton.DFA, bool) {
	red := t.Red()
	dfa := automaton.NewDFAV1(g.alphabet, len(red))
	state := make(map[string]int, len(red))
	for _, u := range red {
		state[u] = dfa.CreateLabeledState(u)
		if t.Get(u, "") == table.Accept {
			dfa.SetAccept(state[u], true)
		} else {
			dfa.SetReject(state[u], true)
		}
	}

	for _, u := range red {
		for _, a := range g.alphabet.Symbols() {
			ua := u + string(a)
			target := -1
			for _, r := range red {
				if t.RowsEqual(r, ua) {
					target = state[r]
					break
				}
			}
			if target == -1 {
				return nil, false
			}
			_ = dfa.AddTransition(state[u], a, target)
		}
	}
	return dfa.RemoveDeadStates(), true
}

func (g *Gold) consistent(dfa *automaton.DFA) bool {
	for w := range g.pos {
		if !dfa.Accepts(w) {
			return false
		}
	}
	for w := range g.neg {
		if dfa.Accepts(w) {
			return false
		}
	}
	return true
}

func (g *Gold) pta() *automaton.DFA {
	pta, err := automaton.BuildPTA(g.alphabet, g.pos.Sorted(), g.neg.Sorted())
	if err != nil {
		// the alphabet covers the sample
		panic(err)
	}
	return pta
}
