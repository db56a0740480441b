// Package rpni implements Regular Positive and Negative Inference: a prefix tree
// acceptor of the positive sample is generalized by merging states greedily, in
// length-lex order, as long as no negative example becomes accepted.
package rpni

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/logging"
	"github.com/geange/inferrer/internal/words"
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

type RPNI struct {
	pos      []string
	neg      []string
	alphabet automaton.Alphabet
	logger   logrus.FieldLogger
}

// New checks that pos and neg are disjoint and spelled over alphabet.
func New(pos, neg []string, alphabet automaton.Alphabet, opts ...Option) (*RPNI, error) {
	o := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(o)
	}
	if err := words.Validate(alphabet, pos, neg); err != nil {
		return nil, err
	}
	if alphabet.Len() == 0 {
		alphabet = automaton.AlphabetOf(append(slices.Clone(pos), neg...)...)
	}
	return &RPNI{
		pos:      words.NewSet(pos...).Sorted(),
		neg:      words.NewSet(neg...).Sorted(),
		alphabet: alphabet,
		logger:   o.logger.WithField("learner", "rpni"),
	}, nil
}

// Learn returns a DFA that accepts every positive and rejects every negative example.
func (r *RPNI) Learn() *automaton.DFA {
	dfa, err := automaton.BuildPTA(r.alphabet, r.pos, nil)
	if err != nil {
		// New has validated the sample
		panic(err)
	}
	r.logger.WithField("states", dfa.NumStates()).Info("built prefix tree acceptor")

	red := []int{dfa.Start()}
	for {
		blue := successors(dfa, red)
		if len(blue) == 0 {
			break
		}
		qb := slices.MinFunc(blue, func(x, y int) int {
			return automaton.CompareWords(dfa.Label(x), dfa.Label(y))
		})

		merged := false
		for _, qr := range red {
			candidate := dfa.Clone()
			merge(candidate, red, qr, qb)
			if r.compatible(candidate) {
				r.logger.WithFields(logrus.Fields{
					"red":  candidate.Label(qr),
					"blue": candidate.Label(qb),
				}).Debug("merged")
				dfa = candidate
				merged = true
				break
			}
		}
		if !merged {
			r.logger.WithField("state", dfa.Label(qb)).Debug("promoted")
			red = append(red, qb)
			slices.SortFunc(red, func(x, y int) int {
				return automaton.CompareWords(dfa.Label(x), dfa.Label(y))
			})
		}
	}

	for _, w := range r.neg {
		if q := dfa.Reach(w); q != -1 && !dfa.IsAccept(q) {
			dfa.SetReject(q, true)
		}
	}

	result := dfa.RemoveDeadStates()
	r.logger.WithField("states", result.NumStates()).Info("learned")
	return result
}

func (r *RPNI) compatible(dfa *automaton.DFA) bool {
	for _, w := range r.neg {
		if dfa.Accepts(w) {
			return false
		}
	}
	return true
}

// successors returns the targets of transitions leaving red that are not red
// themselves.
func successors(dfa *automaton.DFA, red []int) []int {
	var blue []int
	for _, q := range red {
		for _, a := range dfa.Alphabet().Symbols() {
			t := dfa.Step(q, a)
			if t != -1 && !slices.Contains(red, t) && !slices.Contains(blue, t) {
				blue = append(blue, t)
			}
		}
	}
	return blue
}

// merge redirects the transition from red into qb to qr and folds the subtree of qb
// into qr.
func merge(dfa *automaton.DFA, red []int, qr, qb int) {
	for _, q := range red {
		for _, a := range dfa.Alphabet().Symbols() {
			if dfa.Step(q, a) == qb {
				_ = dfa.AddTransition(q, a, qr)
			}
		}
	}
	fold(dfa, qr, qb)
}

func fold(dfa *automaton.DFA, q, p int) {
	if dfa.IsAccept(p) {
		dfa.SetAccept(q, true)
	}
	for _, a := range dfa.Alphabet().Symbols() {
		t := dfa.Step(p, a)
		if t == -1 {
			continue
		}
		if u := dfa.Step(q, a); u != -1 {
			fold(dfa, u, t)
		} else {
			_ = dfa.AddTransition(q, a, t)
		}
	}
}
