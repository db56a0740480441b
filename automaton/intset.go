package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// IntSet is a hashable set of state ids.
type IntSet interface {
	Hashable

	GetArray() []int

	Size() int
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable sorted set of NFA states, remembered together with the
// DFA state it became during subset construction.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

func NewFrozenIntSet(values []int, hashCode uint64, state int) *FrozenIntSet {
	return &FrozenIntSet{values: values, state: state, hashCode: hashCode}
}

// FreezeStates snapshots the members of b. Equal sets always hash the same.
func FreezeStates(b *bitset.BitSet, state int) *FrozenIntSet {
	values := setStates(b)
	return NewFrozenIntSet(values, hashStates(values), state)
}

func hashStates(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h += uint64(uint32(mix32(v)))
	}
	return h
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	o, ok := other.(*FrozenIntSet)
	if !ok {
		return false
	}
	if f == nil || o == nil {
		return f == o
	}
	return f.hashCode == o.hashCode && slices.Equal(f.values, o.values)
}

func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// State is the DFA state this set was assigned.
func (f *FrozenIntSet) State() int {
	return f.state
}
