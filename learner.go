// Package inferrer is the entry point for learning a regular language. A Learner binds
// an alphabet, one of the four algorithms and its inputs, and returns the learned
// language as a DFA.
//
//	l, err := inferrer.NewLearner(alphabet, inferrer.RPNI,
//		inferrer.WithExamples(pos, neg))
//	dfa, err := l.Learn()
//	fmt.Println(dfa.ToRegex())
package inferrer

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/gold"
	"github.com/geange/inferrer/internal/logging"
	"github.com/geange/inferrer/internal/words"
	"github.com/geange/inferrer/lstar"
	"github.com/geange/inferrer/nlstar"
	"github.com/geange/inferrer/oracle"
	"github.com/geange/inferrer/rpni"
)

var (
	ErrEmptyAlphabet    = errors.New("alphabet is empty")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrMissingOracle    = errors.New("active algorithm needs an oracle or examples")
)

type Algorithm string

const (
	Gold   Algorithm = "gold"
	RPNI   Algorithm = "rpni"
	LStar  Algorithm = "lstar"
	NLStar Algorithm = "nlstar"
)

// Algorithms lists the supported algorithms.
func Algorithms() []Algorithm {
	return []Algorithm{Gold, RPNI, LStar, NLStar}
}

// ParseAlgorithm accepts the names returned by Algorithms.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if string(a) == name {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Active reports whether the algorithm learns from an oracle.
func (a Algorithm) Active() bool {
	return a == LStar || a == NLStar
}

type options struct {
	pos, neg []string
	oracle   oracle.Oracle
	logger   logrus.FieldLogger
	registry prometheus.Registerer
}

type Option func(*options)

// WithExamples supplies the sample. Active algorithms given no oracle answer from a
// Passive oracle over it.
func WithExamples(pos, neg []string) Option {
	return func(o *options) {
		o.pos, o.neg = pos, neg
	}
}

func WithOracle(o oracle.Oracle) Option {
	return func(opts *options) {
		opts.oracle = o
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry counts the oracle queries of active algorithms on reg.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

type Learner struct {
	alphabet  automaton.Alphabet
	algorithm Algorithm
	pos, neg  []string
	oracle    oracle.Oracle
	runID     string
	logger    logrus.FieldLogger
}

// NewLearner validates the inputs for algorithm over alphabet.
func NewLearner(alphabet automaton.Alphabet, algorithm Algorithm, opts ...Option) (*Learner, error) {
	o := &options{logger: logging.Discard()}
	for _, fn := range opts {
		fn(o)
	}

	if alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}
	if _, err := ParseAlgorithm(string(algorithm)); err != nil {
		return nil, err
	}
	if err := words.Validate(alphabet, o.pos, o.neg); err != nil {
		return nil, fmt.Errorf("invalid sample: %w", err)
	}

	l := &Learner{
		alphabet:  alphabet,
		algorithm: algorithm,
		pos:       o.pos,
		neg:       o.neg,
		runID:     uuid.New().String(),
	}
	l.logger = o.logger.WithFields(logrus.Fields{
		"run_id":    l.runID,
		"algorithm": string(algorithm),
	})

	if !algorithm.Active() {
		return l, nil
	}
	l.oracle = o.oracle
	if l.oracle == nil {
		if len(o.pos) == 0 && len(o.neg) == 0 {
			return nil, ErrMissingOracle
		}
		l.oracle = oracle.NewPassive(o.pos, o.neg)
	}
	if o.registry != nil {
		instrumented, err := oracle.Instrument(l.oracle, o.registry, string(algorithm))
		if err != nil {
			return nil, fmt.Errorf("register oracle metrics: %w", err)
		}
		l.oracle = instrumented
	}
	return l, nil
}

// RunID identifies this learner in its log entries.
func (l *Learner) RunID() string {
	return l.runID
}

func (l *Learner) Algorithm() Algorithm {
	return l.algorithm
}

// Learn runs the algorithm. NL* hypotheses are determinized and minimized; the other
// results are renamed to 0..n-1 in breadth-first order.
func (l *Learner) Learn() (*automaton.DFA, error) {
	started := time.Now()
	l.logger.Info("learning started")

	var dfa *automaton.DFA
	switch l.algorithm {
	case Gold:
		g, err := gold.New(l.pos, l.neg, gold.WithAlphabet(l.alphabet), gold.WithLogger(l.logger))
		if err != nil {
			return nil, err
		}
		dfa = g.Learn().RenameStates()
	case RPNI:
		r, err := rpni.New(l.pos, l.neg, l.alphabet, rpni.WithLogger(l.logger))
		if err != nil {
			return nil, err
		}
		dfa = r.Learn().RenameStates()
	case LStar:
		ls, err := lstar.New(l.alphabet, l.oracle, lstar.WithLogger(l.logger))
		if err != nil {
			return nil, err
		}
		dfa = ls.Learn()
	case NLStar:
		nl, err := nlstar.New(l.alphabet, l.oracle, nlstar.WithLogger(l.logger))
		if err != nil {
			return nil, err
		}
		dfa = nl.Learn().Minimize()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, l.algorithm)
	}

	l.logger.WithFields(logrus.Fields{
		"states":   dfa.NumStates(),
		"duration": time.Since(started),
	}).Info("learning finished")
	return dfa, nil
}
