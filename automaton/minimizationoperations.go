package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// Minimize Minimizes the given automaton using Hopcroft's algorithm. Missing
// transitions are routed to a virtual sink that takes part in refinement and is
// dropped again afterwards unless a real state shares its block; a minimized partial
// DFA therefore stays partial and a total one keeps its dead state. The result is
// renamed canonically, so minimizing twice yields an equal automaton.
func (d *DFA) Minimize() *DFA {
	if d.NumStates() == 0 {
		return d.Clone()
	}
	trimmed := d.RemoveDeadStates()
	n := trimmed.NumStates()
	k := trimmed.alphabet.Len()
	sink := n
	total := n + 1

	target := func(q, j int) int {
		if q == sink {
			return sink
		}
		if t := trimmed.stepIndex(q, j); t != -1 {
			return t
		}
		return sink
	}

	// inverse[j][t] lists the states that reach t on symbol j.
	inverse := make([][][]int, k)
	for j := 0; j < k; j++ {
		inverse[j] = make([][]int, total)
		for q := 0; q < total; q++ {
			t := target(q, j)
			inverse[j][t] = append(inverse[j][t], q)
		}
	}

	var accept, reject []int
	for q := 0; q < total; q++ {
		if q != sink && trimmed.IsAccept(q) {
			accept = append(accept, q)
		} else {
			reject = append(reject, q)
		}
	}

	blockOf := make([]int, total)
	var blocks [][]int
	addBlock := func(members []int) int {
		id := len(blocks)
		blocks = append(blocks, members)
		for _, q := range members {
			blockOf[q] = id
		}
		return id
	}

	var queue []int
	inQueue := bitset.New(uint(2 * total))
	enqueue := func(b int) {
		queue = append(queue, b)
		inQueue.Set(uint(b))
	}

	r := addBlock(reject)
	if len(accept) > 0 {
		a := addBlock(accept)
		if len(accept) <= len(reject) {
			enqueue(a)
		} else {
			enqueue(r)
		}
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		inQueue.Clear(uint(s))
		splitter := append([]int(nil), blocks[s]...)

		for j := 0; j < k; j++ {
			marked := bitset.New(uint(total))
			count := make(map[int]int)
			var touched []int
			for _, t := range splitter {
				for _, q := range inverse[j][t] {
					if marked.Test(uint(q)) {
						continue
					}
					marked.Set(uint(q))
					b := blockOf[q]
					if count[b] == 0 {
						touched = append(touched, b)
					}
					count[b]++
				}
			}

			for _, b := range touched {
				if count[b] == len(blocks[b]) {
					continue
				}
				var in, out []int
				for _, q := range blocks[b] {
					if marked.Test(uint(q)) {
						in = append(in, q)
					} else {
						out = append(out, q)
					}
				}
				blocks[b] = in
				nb := addBlock(out)
				switch {
				case inQueue.Test(uint(b)):
					enqueue(nb)
				case len(in) <= len(out):
					enqueue(b)
				default:
					enqueue(nb)
				}
			}
		}
	}

	// one state per block, except a block holding nothing but the sink
	newID := make([]int, len(blocks))
	result := NewDFAV1(trimmed.alphabet, len(blocks))
	for b, members := range blocks {
		newID[b] = -1
		if len(members) == 1 && members[0] == sink {
			continue
		}
		newID[b] = result.CreateState()
	}
	for b, members := range blocks {
		p := newID[b]
		if p == -1 {
			continue
		}
		rep := members[0]
		if rep == sink {
			rep = members[1]
		}
		result.SetAccept(p, trimmed.IsAccept(rep))
		if !trimmed.IsAccept(rep) && anyReject(trimmed, members) {
			result.SetReject(p, true)
		}
		for j := 0; j < k; j++ {
			if t := newID[blockOf[target(rep, j)]]; t != -1 {
				result.transitions[p*k+j] = t
			}
		}
	}
	result.start = newID[blockOf[trimmed.start]]
	return result.RenameStates()
}

func anyReject(d *DFA, members []int) bool {
	for _, q := range members {
		if q < d.NumStates() && d.IsReject(q) {
			return true
		}
	}
	return false
}
