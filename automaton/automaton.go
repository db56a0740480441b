package automaton

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// FSA is a finite-state acceptor over a fixed alphabet. DFA and NFA are its only
// implementations.
type FSA interface {
	Alphabet() Alphabet

	// ParseString runs s through the automaton and returns the state the run ended in
	// together with whether s was accepted.
	ParseString(s string) (int, bool)

	Accepts(s string) bool

	NumStates() int

	// ToDFA returns a deterministic automaton for the same language.
	ToDFA() *DFA

	ToRegex() string
}

var (
	_ FSA = &DFA{}
	_ FSA = &NFA{}
)

// DFA Represents a deterministic, possibly partial, automaton. States are integers
// created with CreateState; the first created state is the start state unless SetStart
// says otherwise. Every state carries a debug label kept in a side table. Transitions
// are stored densely, one row of len(alphabet) targets per state, -1 meaning undefined.
//
// Accept and reject sets are disjoint: marking a state as one clears the other. A state
// in neither set is simply not accepting.
type DFA struct {
	alphabet Alphabet
	start    int
	labels   []string

	isAccept *bitset.BitSet
	isReject *bitset.BitSet

	// Holds the target for (state, symbol index) at state*len(alphabet)+index.
	transitions []int
}

func NewDFA(alphabet Alphabet) *DFA {
	return NewDFAV1(alphabet, 2)
}

// NewDFAV1 is NewDFA with a capacity hint for the number of states.
func NewDFAV1(alphabet Alphabet, numStates int) *DFA {
	return &DFA{
		alphabet:    alphabet,
		labels:      make([]string, 0, numStates),
		isAccept:    bitset.New(uint(numStates)),
		isReject:    bitset.New(uint(numStates)),
		transitions: make([]int, 0, numStates*alphabet.Len()),
	}
}

// CreateState Create a new state labelled with its id.
func (d *DFA) CreateState() int {
	return d.CreateLabeledState(strconv.Itoa(len(d.labels)))
}

// CreateLabeledState Create a new state with a debug label.
func (d *DFA) CreateLabeledState(label string) int {
	state := len(d.labels)
	d.labels = append(d.labels, label)
	for i := 0; i < d.alphabet.Len(); i++ {
		d.transitions = append(d.transitions, -1)
	}
	return state
}

func (d *DFA) Alphabet() Alphabet {
	return d.alphabet
}

func (d *DFA) NumStates() int {
	return len(d.labels)
}

func (d *DFA) Start() int {
	return d.start
}

func (d *DFA) SetStart(state int) error {
	if err := d.checkState(state); err != nil {
		return err
	}
	d.start = state
	return nil
}

func (d *DFA) Label(state int) string {
	return d.labels[state]
}

// SetAccept Set or clear this state as an accept state. Accepting a state removes it
// from the reject set.
func (d *DFA) SetAccept(state int, accept bool) {
	d.isAccept.SetTo(uint(state), accept)
	if accept {
		d.isReject.Clear(uint(state))
	}
}

// SetReject Set or clear this state as an explicit reject state. Rejecting a state
// removes it from the accept set.
func (d *DFA) SetReject(state int, reject bool) {
	d.isReject.SetTo(uint(state), reject)
	if reject {
		d.isAccept.Clear(uint(state))
	}
}

// IsAccept Returns true if this state is an accept state.
func (d *DFA) IsAccept(state int) bool {
	return state >= 0 && d.isAccept.Test(uint(state))
}

func (d *DFA) IsReject(state int) bool {
	return state >= 0 && d.isReject.Test(uint(state))
}

// AcceptStates returns the accept states in ascending order.
func (d *DFA) AcceptStates() []int {
	return setStates(d.isAccept)
}

func (d *DFA) RejectStates() []int {
	return setStates(d.isReject)
}

func (d *DFA) NumAcceptStates() int {
	return int(d.isAccept.Count())
}

// AddTransition Add (or overwrite) the transition source -symbol-> dest.
func (d *DFA) AddTransition(source int, symbol rune, dest int) error {
	if err := d.checkState(source); err != nil {
		return err
	}
	if err := d.checkState(dest); err != nil {
		return err
	}
	i, ok := d.alphabet.IndexOf(symbol)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSymbolNotInAlphabet, symbol)
	}
	d.transitions[source*d.alphabet.Len()+i] = dest
	return nil
}

// Step Performs lookup in transitions, assuming determinism. Returns -1 when there is
// no such transition.
func (d *DFA) Step(state int, symbol rune) int {
	i, ok := d.alphabet.IndexOf(symbol)
	if !ok || state < 0 {
		return -1
	}
	return d.transitions[state*d.alphabet.Len()+i]
}

// stepIndex is Step by symbol position in the alphabet.
func (d *DFA) stepIndex(state, i int) int {
	return d.transitions[state*d.alphabet.Len()+i]
}

// ParseString walks s from the start state. The walk stops at the first undefined
// transition; the returned state is the last one reached.
func (d *DFA) ParseString(s string) (int, bool) {
	if d.NumStates() == 0 {
		return -1, false
	}
	state := d.start
	for _, r := range s {
		next := d.Step(state, r)
		if next == -1 {
			return state, false
		}
		state = next
	}
	return state, d.IsAccept(state)
}

// Reach returns the state reached by reading all of s, or -1.
func (d *DFA) Reach(s string) int {
	if d.NumStates() == 0 {
		return -1
	}
	state := d.start
	for _, r := range s {
		if state = d.Step(state, r); state == -1 {
			return -1
		}
	}
	return state
}

func (d *DFA) Accepts(s string) bool {
	_, ok := d.ParseString(s)
	return ok
}

func (d *DFA) Clone() *DFA {
	return &DFA{
		alphabet:    d.alphabet,
		start:       d.start,
		labels:      append([]string(nil), d.labels...),
		isAccept:    d.isAccept.Clone(),
		isReject:    d.isReject.Clone(),
		transitions: append([]int(nil), d.transitions...),
	}
}

func (d *DFA) ToDFA() *DFA {
	return d.Clone()
}

// Equal reports whether d and other are the same automaton up to state names: both are
// renamed canonically and compared transition by transition.
func (d *DFA) Equal(other *DFA) bool {
	if !d.alphabet.Equal(other.alphabet) {
		return false
	}
	a, b := d.RenameStates(), other.RenameStates()
	if a.NumStates() != b.NumStates() || a.start != b.start ||
		!slices.Equal(a.AcceptStates(), b.AcceptStates()) {
		return false
	}
	for i := range a.transitions {
		if a.transitions[i] != b.transitions[i] {
			return false
		}
	}
	return true
}

func (d *DFA) checkState(state int) error {
	if state < 0 || state >= d.NumStates() {
		return fmt.Errorf("%w: %d (have %d states)", ErrStateOutOfRange, state, d.NumStates())
	}
	return nil
}

// String renders the transition table, one state per line.
func (d *DFA) String() string {
	var sb strings.Builder
	for q := 0; q < d.NumStates(); q++ {
		if q == d.start {
			sb.WriteString("->")
		} else {
			sb.WriteString("  ")
		}
		switch {
		case d.IsAccept(q):
			sb.WriteString("+")
		case d.IsReject(q):
			sb.WriteString("-")
		default:
			sb.WriteString(" ")
		}
		sb.WriteString(d.labels[q])
		for i, r := range d.alphabet.symbols {
			if t := d.stepIndex(q, i); t != -1 {
				fmt.Fprintf(&sb, " %c:%s", r, d.labels[t])
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func setStates(b *bitset.BitSet) []int {
	states := make([]int, 0, b.Count())
	for i, ok := b.NextSet(0); ok; i, ok = b.NextSet(i + 1) {
		states = append(states, int(i))
	}
	return states
}
