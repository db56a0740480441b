package oracle

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geange/inferrer/automaton"
)

// Instrumented counts the queries that pass through it.
type Instrumented struct {
	next        Oracle
	membership  prometheus.Counter
	equivalence *prometheus.CounterVec
}

// Instrument wraps next and registers its counters on reg, labelled with the learner
// name. Instrumenting the same learner twice on one registry fails.
func Instrument(next Oracle, reg prometheus.Registerer, learner string) (*Instrumented, error) {
	membership := prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "inferrer_membership_queries_total",
		Help:        "Total membership queries answered",
		ConstLabels: prometheus.Labels{"learner": learner},
	})
	equivalence := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "inferrer_equivalence_queries_total",
		Help:        "Total equivalence queries answered by result",
		ConstLabels: prometheus.Labels{"learner": learner},
	}, []string{"result"})

	for _, c := range []prometheus.Collector{membership, equivalence} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return &Instrumented{next: next, membership: membership, equivalence: equivalence}, nil
}

func (i *Instrumented) MembershipQuery(word string) bool {
	i.membership.Inc()
	return i.next.MembershipQuery(word)
}

func (i *Instrumented) EquivalenceQuery(hypothesis automaton.FSA) (string, bool) {
	w, ok := i.next.EquivalenceQuery(hypothesis)
	if ok {
		i.equivalence.WithLabelValues("satisfied").Inc()
	} else {
		i.equivalence.WithLabelValues("counterexample").Inc()
	}
	return w, ok
}

// MembershipQueries returns the membership counter.
func (i *Instrumented) MembershipQueries() prometheus.Counter {
	return i.membership
}

// EquivalenceQueries returns the equivalence counter for result "satisfied" or
// "counterexample".
func (i *Instrumented) EquivalenceQueries(result string) prometheus.Counter {
	return i.equivalence.WithLabelValues(result)
}
