package automaton

import (
	"slices"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Determinize Determinizes the given automaton by subset construction. Several start
// states are first joined under a synthetic start with ε-edges. Every reachable
// ε-closed subset becomes one DFA state, the empty subset included, so the result is
// total. Worst case complexity: exponential in number of states.
func Determinize(n *NFA) *DFA {
	a := n
	if len(n.StartStates()) > 1 {
		a = unionStarts(n)
	}
	k := a.alphabet.Len()

	d := NewDFA(a.alphabet)
	starts := bitset.New(uint(a.NumStates()))
	for _, q := range a.StartStates() {
		starts.Set(uint(q))
	}
	starts = a.epsilonClosure(starts)
	initial := FreezeStates(starts, d.CreateLabeledState(a.subsetLabel(starts)))
	d.SetAccept(initial.State(), a.anyAccept(initial))

	newState := NewHashMap[*FrozenIntSet, int](WithCapacity(a.NumStates()))
	newState.Set(initial, initial.State())
	workList := []*FrozenIntSet{initial}

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]

		for i := 0; i < k; i++ {
			r := a.alphabet.symbols[i]
			next := bitset.New(uint(a.NumStates()))
			for _, q := range s.GetArray() {
				if targets, ok := a.transitions[q][r]; ok {
					next.InPlaceUnion(targets)
				}
			}
			next = a.epsilonClosure(next)

			key := FreezeStates(next, -1)
			dest, ok := newState.Get(key)
			if !ok {
				dest = d.CreateLabeledState(a.subsetLabel(next))
				key = NewFrozenIntSet(key.GetArray(), key.Hash(), dest)
				d.SetAccept(dest, a.anyAccept(key))
				newState.Set(key, dest)
				workList = append(workList, key)
			}
			_ = d.AddTransition(s.State(), r, dest)
		}
	}
	return d
}

// unionStarts returns a copy of n with a single new start state that has an ε-edge to
// each former start state.
func unionStarts(n *NFA) *NFA {
	u := NewNFA(n.alphabet)
	for q := 0; q < n.NumStates(); q++ {
		u.CreateLabeledState(n.labels[q])
		u.SetAccept(q, n.IsAccept(q))
	}
	for q := 0; q < n.NumStates(); q++ {
		for r, targets := range n.transitions[q] {
			for _, t := range setStates(targets) {
				_ = u.AddTransition(q, r, t)
			}
		}
	}
	s := u.CreateLabeledState("start")
	u.SetStart(s, true)
	for _, q := range n.StartStates() {
		_ = u.AddTransition(s, Epsilon, q)
	}
	return u
}

func (n *NFA) anyAccept(set IntSet) bool {
	for _, q := range set.GetArray() {
		if n.IsAccept(q) {
			return true
		}
	}
	return false
}

func (n *NFA) subsetLabel(set *bitset.BitSet) string {
	members := setStates(set)
	parts := make([]string, len(members))
	for i, q := range members {
		parts[i] = n.labels[q]
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RemoveDeadStates Returns a copy of d without the states unreachable from the start
// state. Labels, accept and reject membership of the survivors are kept.
func (d *DFA) RemoveDeadStates() *DFA {
	if d.NumStates() == 0 {
		return d.Clone()
	}
	reachable := d.reachableStates()

	newID := make([]int, d.NumStates())
	result := NewDFAV1(d.alphabet, int(reachable.Count()))
	for q := 0; q < d.NumStates(); q++ {
		newID[q] = -1
		if reachable.Test(uint(q)) {
			newID[q] = result.CreateLabeledState(d.labels[q])
		}
	}
	d.copyInto(result, newID)
	return result
}

// RenameStates Returns a copy of d whose states are numbered, and labelled, in
// breadth-first order from the start state, visiting symbols in alphabet order.
// Unreachable states are dropped. Two automata that differ only in state names rename
// to identical values.
func (d *DFA) RenameStates() *DFA {
	if d.NumStates() == 0 {
		return d.Clone()
	}
	k := d.alphabet.Len()
	newID := make([]int, d.NumStates())
	for i := range newID {
		newID[i] = -1
	}
	order := []int{d.start}
	newID[d.start] = 0
	for i := 0; i < len(order); i++ {
		for j := 0; j < k; j++ {
			if t := d.stepIndex(order[i], j); t != -1 && newID[t] == -1 {
				newID[t] = len(order)
				order = append(order, t)
			}
		}
	}

	result := NewDFAV1(d.alphabet, len(order))
	for range order {
		result.CreateState()
	}
	d.copyInto(result, newID)
	return result
}

// copyInto copies start, flags and transitions of every state with newID != -1 into
// result, which must already have the target states.
func (d *DFA) copyInto(result *DFA, newID []int) {
	k := d.alphabet.Len()
	result.start = newID[d.start]
	for q := 0; q < d.NumStates(); q++ {
		p := newID[q]
		if p == -1 {
			continue
		}
		result.SetAccept(p, d.IsAccept(q))
		if d.IsReject(q) {
			result.SetReject(p, true)
		}
		for j := 0; j < k; j++ {
			if t := d.stepIndex(q, j); t != -1 && newID[t] != -1 {
				result.transitions[p*k+j] = newID[t]
			}
		}
	}
}

func (d *DFA) reachableStates() *bitset.BitSet {
	k := d.alphabet.Len()
	seen := bitset.New(uint(d.NumStates()))
	workList := []int{d.start}
	seen.Set(uint(d.start))
	for len(workList) > 0 {
		q := workList[0]
		workList = workList[1:]
		for j := 0; j < k; j++ {
			if t := d.stepIndex(q, j); t != -1 && !seen.Test(uint(t)) {
				seen.Set(uint(t))
				workList = append(workList, t)
			}
		}
	}
	return seen
}

// IsEmpty Returns true if the given automaton accepts no strings.
func IsEmpty(d *DFA) bool {
	if d.NumStates() == 0 {
		return true
	}
	reachable := d.reachableStates()
	for _, q := range d.AcceptStates() {
		if reachable.Test(uint(q)) {
			return false
		}
	}
	return true
}

// Distinguish searches the product of a and b breadth-first and returns the shortest,
// then least, word accepted by exactly one of them. A missing transition behaves as a
// dead state.
func Distinguish(a, b *DFA) (string, bool) {
	symbols := NewAlphabetRunes(append(a.alphabet.Symbols(), b.alphabet.Symbols()...)...).symbols

	type pair struct{ p, q int }
	type node struct {
		pair
		parent int
		symbol rune
	}
	start := pair{a.startOrDead(), b.startOrDead()}
	nodes := []node{{pair: start, parent: -1}}
	seen := map[pair]struct{}{start: {}}

	for i := 0; i < len(nodes); i++ {
		cur := nodes[i]
		if a.IsAccept(cur.p) != b.IsAccept(cur.q) {
			var word []rune
			for j := i; nodes[j].parent != -1; j = nodes[j].parent {
				word = append(word, nodes[j].symbol)
			}
			slices.Reverse(word)
			return string(word), true
		}
		if cur.p == -1 && cur.q == -1 {
			continue
		}
		for _, r := range symbols {
			next := pair{a.Step(cur.p, r), b.Step(cur.q, r)}
			if _, ok := seen[next]; !ok {
				seen[next] = struct{}{}
				nodes = append(nodes, node{pair: next, parent: i, symbol: r})
			}
		}
	}
	return "", false
}

// Equivalent reports whether a and b accept the same language.
func Equivalent(a, b FSA) bool {
	_, differ := Distinguish(a.ToDFA(), b.ToDFA())
	return !differ
}

func (d *DFA) startOrDead() int {
	if d.NumStates() == 0 {
		return -1
	}
	return d.start
}
