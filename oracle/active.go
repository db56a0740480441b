package oracle

import (
	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/words"
)

const (
	// MaxSelfLoopDepth bounds how many times in a row the search follows a self-loop.
	MaxSelfLoopDepth = 10
	// MaxVisitDepth bounds how many times the search enqueues any one state.
	MaxVisitDepth = 50
)

// Active answers queries from a reference automaton. Equivalence queries run a
// bounded breadth-first search over the reference's transitions and compare the
// hypothesis with the reference on every word generated, so the search always
// terminates but may miss a disagreement that needs a longer word.
type Active struct {
	target *automaton.DFA
	run    *automaton.RunAutomaton

	counterexamples words.Set
}

// NewActive wraps target, which is minimized first.
func NewActive(target automaton.FSA) *Active {
	t := target.ToDFA().Minimize()
	return &Active{
		target:          t,
		run:             automaton.NewRunAutomaton(t),
		counterexamples: words.NewSet(),
	}
}

func (a *Active) MembershipQuery(word string) bool {
	return a.run.Run(word)
}

// EquivalenceQuery never returns the same counterexample twice.
func (a *Active) EquivalenceQuery(hypothesis automaton.FSA) (string, bool) {
	if hypothesis.ToDFA().Minimize().Equal(a.target) {
		return "", true
	}

	type item struct {
		state     int
		loopDepth int
		word      string
	}
	start := a.target.Start()
	queue := []item{{state: start, word: ""}}
	visited := map[int]int{start: 0}
	symbols := a.target.Alphabet().Symbols()

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if !a.counterexamples.Has(cur.word) && a.run.Run(cur.word) != hypothesis.Accepts(cur.word) {
			a.counterexamples.Add(cur.word)
			return cur.word, false
		}

		for _, r := range symbols {
			next := a.target.Step(cur.state, r)
			if next == -1 {
				continue
			}
			depth := 0
			if next == cur.state {
				if cur.loopDepth >= MaxSelfLoopDepth {
					continue
				}
				depth = cur.loopDepth + 1
			}
			count, seen := visited[next]
			if seen && count >= MaxVisitDepth {
				continue
			}
			if seen {
				visited[next] = count + 1
			} else {
				visited[next] = 0
			}
			queue = append(queue, item{state: next, loopDepth: depth, word: cur.word + string(r)})
		}
	}
	return "", true
}
