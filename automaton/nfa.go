package automaton

import (
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

// Epsilon labels an NFA transition that consumes no input.
const Epsilon rune = -1

// NFA is a non-deterministic automaton with any number of start states and
// ε-transitions. There is no reject set: a state that is not accepting rejects.
type NFA struct {
	alphabet Alphabet
	labels   []string
	isStart  *bitset.BitSet
	isAccept *bitset.BitSet

	// transitions[state][symbol] is the set of targets; Epsilon is a valid key.
	transitions []map[rune]*bitset.BitSet
}

func NewNFA(alphabet Alphabet) *NFA {
	return &NFA{
		alphabet: alphabet,
		isStart:  bitset.New(0),
		isAccept: bitset.New(0),
	}
}

func (n *NFA) CreateState() int {
	return n.CreateLabeledState(strconv.Itoa(len(n.labels)))
}

func (n *NFA) CreateLabeledState(label string) int {
	state := len(n.labels)
	n.labels = append(n.labels, label)
	n.transitions = append(n.transitions, make(map[rune]*bitset.BitSet))
	return state
}

func (n *NFA) Alphabet() Alphabet {
	return n.alphabet
}

func (n *NFA) NumStates() int {
	return len(n.labels)
}

func (n *NFA) Label(state int) string {
	return n.labels[state]
}

func (n *NFA) SetStart(state int, start bool) {
	n.isStart.SetTo(uint(state), start)
}

func (n *NFA) IsStart(state int) bool {
	return n.isStart.Test(uint(state))
}

// StartStates returns the start states in ascending order.
func (n *NFA) StartStates() []int {
	return setStates(n.isStart)
}

func (n *NFA) SetAccept(state int, accept bool) {
	n.isAccept.SetTo(uint(state), accept)
}

func (n *NFA) IsAccept(state int) bool {
	return state >= 0 && n.isAccept.Test(uint(state))
}

func (n *NFA) AcceptStates() []int {
	return setStates(n.isAccept)
}

// AddTransition adds source -symbol-> dest. symbol is either in the alphabet or
// Epsilon.
func (n *NFA) AddTransition(source int, symbol rune, dest int) error {
	for _, s := range []int{source, dest} {
		if s < 0 || s >= n.NumStates() {
			return fmt.Errorf("%w: %d (have %d states)", ErrStateOutOfRange, s, n.NumStates())
		}
	}
	if symbol != Epsilon && !n.alphabet.Contains(symbol) {
		return fmt.Errorf("%w: %q", ErrSymbolNotInAlphabet, symbol)
	}
	targets, ok := n.transitions[source][symbol]
	if !ok {
		targets = bitset.New(uint(n.NumStates()))
		n.transitions[source][symbol] = targets
	}
	targets.Set(uint(dest))
	return nil
}

// Successors returns the targets of state on symbol in ascending order.
func (n *NFA) Successors(state int, symbol rune) []int {
	targets, ok := n.transitions[state][symbol]
	if !ok {
		return nil
	}
	return setStates(targets)
}

// ParseString explores every path from every start state, in ascending order, and
// returns the first accepting state that consumes all of s. ε-moves do not consume
// input. Each (state, position) pair is expanded at most once per start state, so
// ε-cycles terminate. A rejected string yields state -1.
func (n *NFA) ParseString(s string) (int, bool) {
	word := []rune(s)
	width := uint(len(word) + 1)

	type frame struct {
		state, pos int
	}
	for _, start := range n.StartStates() {
		visited := bitset.New(uint(n.NumStates()) * width)
		stack := []frame{{start, 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			key := uint(f.state)*width + uint(f.pos)
			if visited.Test(key) {
				continue
			}
			visited.Set(key)

			if f.pos == len(word) && n.IsAccept(f.state) {
				return f.state, true
			}

			// pushed in reverse so the lowest state is explored first
			if f.pos < len(word) {
				next := n.Successors(f.state, word[f.pos])
				for i := len(next) - 1; i >= 0; i-- {
					stack = append(stack, frame{next[i], f.pos + 1})
				}
			}
			next := n.Successors(f.state, Epsilon)
			for i := len(next) - 1; i >= 0; i-- {
				stack = append(stack, frame{next[i], f.pos})
			}
		}
	}
	return -1, false
}

func (n *NFA) Accepts(s string) bool {
	_, ok := n.ParseString(s)
	return ok
}

// ToDFA is Determinize(n).
func (n *NFA) ToDFA() *DFA {
	return Determinize(n)
}

// Minimize returns the minimal DFA for the language of n.
func (n *NFA) Minimize() *DFA {
	return Determinize(n).Minimize()
}

func (n *NFA) ToRegex() string {
	return Determinize(n).ToRegex()
}

// RenameStates relabels states 0..n-1 in breadth-first order from the start states,
// visiting symbols in alphabet order with ε first. Unreachable states are dropped.
func (n *NFA) RenameStates() *NFA {
	order := make([]int, 0, n.NumStates())
	newID := make([]int, n.NumStates())
	for i := range newID {
		newID[i] = -1
	}
	visit := func(q int) {
		if newID[q] == -1 {
			newID[q] = len(order)
			order = append(order, q)
		}
	}
	for _, q := range n.StartStates() {
		visit(q)
	}
	symbols := append([]rune{Epsilon}, n.alphabet.symbols...)
	for i := 0; i < len(order); i++ {
		for _, r := range symbols {
			for _, t := range n.Successors(order[i], r) {
				visit(t)
			}
		}
	}

	result := NewNFA(n.alphabet)
	for range order {
		result.CreateState()
	}
	for _, q := range order {
		p := newID[q]
		result.SetStart(p, n.IsStart(q))
		result.SetAccept(p, n.IsAccept(q))
		for r, targets := range n.transitions[q] {
			for _, t := range setStates(targets) {
				_ = result.AddTransition(p, r, newID[t])
			}
		}
	}
	return result
}

// epsilonClosure adds to set every state reachable from it by ε-moves.
func (n *NFA) epsilonClosure(set *bitset.BitSet) *bitset.BitSet {
	workList := setStates(set)
	for len(workList) > 0 {
		q := workList[len(workList)-1]
		workList = workList[:len(workList)-1]
		targets, ok := n.transitions[q][Epsilon]
		if !ok {
			continue
		}
		for t, ok := targets.NextSet(0); ok; t, ok = targets.NextSet(t + 1) {
			if !set.Test(t) {
				set.Set(t)
				workList = append(workList, int(t))
			}
		}
	}
	return set
}
