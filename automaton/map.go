package automaton

// Hashable is a key usable in HashMap.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap is a chained hash table keyed by Hashable values. Subset construction uses it
// to map frozen state sets to DFA states.
type HashMap[K Hashable, V any] struct {
	buckets    []*entry[K, V]
	size       int
	mask       uint64
	loadFactor float64
}

type entry[K Hashable, V any] struct {
	key   K
	value V
	next  *entry[K, V]
}

type optionsHashMap struct {
	capacity   int
	loadFactor float64
}

type OptionsHashMap func(*optionsHashMap)

// WithCapacity sets the initial bucket count, rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(o *optionsHashMap) {
		o.capacity = capacity
	}
}

func NewHashMap[K Hashable, V any](options ...OptionsHashMap) *HashMap[K, V] {
	opts := &optionsHashMap{capacity: 1, loadFactor: 0.75}
	for _, fn := range options {
		fn(opts)
	}

	capacity := 1
	for capacity < opts.capacity {
		capacity <<= 1
	}

	return &HashMap[K, V]{
		buckets:    make([]*entry[K, V], capacity),
		mask:       uint64(capacity - 1),
		loadFactor: opts.loadFactor,
	}
}

// Set inserts or replaces the value for key.
func (m *HashMap[K, V]) Set(key K, value V) {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[K, V]{key: key, value: value, next: m.buckets[index]}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
}

func (m *HashMap[K, V]) Get(key K) (V, bool) {
	for e := m.buckets[key.Hash()&m.mask]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var zero V
	return zero, false
}

func (m *HashMap[K, V]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*entry[K, V], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			i := e.key.Hash() & newMask
			newBuckets[i] = &entry[K, V]{key: e.key, value: e.value, next: newBuckets[i]}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}
