package automaton

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
)

func frozen(values ...int) *FrozenIntSet {
	b := bitset.New(0)
	for _, v := range values {
		b.Set(uint(v))
	}
	return FreezeStates(b, -1)
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[*FrozenIntSet, int](WithCapacity(8))
		hm.Set(frozen(1, 2), 7)

		val, exists := hm.Get(frozen(2, 1))
		assert.True(t, exists)
		assert.Equal(t, 7, val)

		_, exists = hm.Get(frozen(1))
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[*FrozenIntSet, int](WithCapacity(8))
		hm.Set(frozen(3), 1)
		hm.Set(frozen(3), 2)

		val, _ := hm.Get(frozen(3))
		assert.Equal(t, 2, val)
		assert.Equal(t, 1, hm.size)
	})

	t.Run("EmptySet", func(t *testing.T) {
		hm := NewHashMap[*FrozenIntSet, int]()
		hm.Set(frozen(), 4)
		val, exists := hm.Get(frozen())
		assert.True(t, exists)
		assert.Equal(t, 4, val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[*FrozenIntSet, int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		hm.Set(frozen(i, i+1), i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(frozen(i, i+1))
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
	assert.Equal(t, 13, hm.size)
}

func TestFrozenIntSetEquals(t *testing.T) {
	assert.True(t, frozen(1, 5).Equals(frozen(5, 1)))
	assert.False(t, frozen(1, 5).Equals(frozen(1, 6)))
	assert.Equal(t, frozen(4, 9).Hash(), frozen(9, 4).Hash())

	var nilSet *FrozenIntSet
	assert.True(t, nilSet.Equals(nilSet))
	assert.False(t, nilSet.Equals(frozen(1)))
	assert.Equal(t, []int{2, 3}, frozen(3, 2).GetArray())
	assert.Equal(t, 2, frozen(3, 2).Size())
}

func TestZeroCapacity(t *testing.T) {
	hm := NewHashMap[*FrozenIntSet, string](WithCapacity(0))
	assert.Equal(t, 1, len(hm.buckets))
}
