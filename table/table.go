// Package table implements the observation table shared by Gold's algorithm and L*.
//
// Rows are indexed by prefixes, columns by experiments (suffixes). Prefixes are split
// into red rows, the candidate states, and blue rows, the one-symbol frontier. A cell
// holds whether prefix·experiment is accepted, rejected or still unknown.
package table

import (
	"slices"
	"strings"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/words"
)

type Entry int8

const (
	Unknown Entry = iota
	Reject
	Accept
)

// EntryOf maps a membership answer to a cell value.
func EntryOf(accepted bool) Entry {
	if accepted {
		return Accept
	}
	return Reject
}

func (e Entry) Known() bool {
	return e != Unknown
}

func (e Entry) String() string {
	switch e {
	case Accept:
		return "1"
	case Reject:
		return "0"
	}
	return "?"
}

// Cell addresses one table entry.
type Cell struct {
	Prefix string
	Suffix string
}

// Inconsistency names two red prefixes with equal rows whose extensions by Symbol
// disagree on Suffix.
type Inconsistency struct {
	First, Second string
	Symbol        rune
	Suffix        string
}

// Experiment is the column that resolves the inconsistency.
func (i Inconsistency) Experiment() string {
	return string(i.Symbol) + i.Suffix
}

type ObservationTable struct {
	alphabet automaton.Alphabet
	red      words.Set
	blue     words.Set
	exp      []string
	expSet   words.Set
	cells    map[string]map[string]Entry
}

func New(alphabet automaton.Alphabet) *ObservationTable {
	return &ObservationTable{
		alphabet: alphabet,
		red:      words.NewSet(),
		blue:     words.NewSet(),
		expSet:   words.NewSet(),
		cells:    make(map[string]map[string]Entry),
	}
}

func (t *ObservationTable) Alphabet() automaton.Alphabet {
	return t.alphabet
}

// Red returns the red prefixes in length-lex order.
func (t *ObservationTable) Red() []string {
	return t.red.Sorted()
}

// Blue returns the blue prefixes in length-lex order.
func (t *ObservationTable) Blue() []string {
	return t.blue.Sorted()
}

// Prefixes returns every row prefix, red and blue, in length-lex order.
func (t *ObservationTable) Prefixes() []string {
	all := append(t.red.Sorted(), t.blue.Sorted()...)
	words.Sort(all)
	return all
}

// Experiments returns the columns in insertion order.
func (t *ObservationTable) Experiments() []string {
	return slices.Clone(t.exp)
}

func (t *ObservationTable) IsRed(u string) bool {
	return t.red.Has(u)
}

func (t *ObservationTable) IsBlue(u string) bool {
	return t.blue.Has(u)
}

func (t *ObservationTable) HasRow(u string) bool {
	return t.red.Has(u) || t.blue.Has(u)
}

// AddRed adds u as a red row, moving it out of blue if needed.
func (t *ObservationTable) AddRed(u string) {
	t.blue.Remove(u)
	t.red.Add(u)
	t.ensureRow(u)
}

// AddBlue adds u as a blue row unless it is already red.
func (t *ObservationTable) AddBlue(u string) {
	if t.red.Has(u) {
		return
	}
	t.blue.Add(u)
	t.ensureRow(u)
}

// Extend adds u·a as a blue row for every symbol a.
func (t *ObservationTable) Extend(u string) {
	for _, a := range t.alphabet.Symbols() {
		t.AddBlue(u + string(a))
	}
}

// AddExperiment adds column e and reports whether it was new.
func (t *ObservationTable) AddExperiment(e string) bool {
	if t.expSet.Has(e) {
		return false
	}
	t.expSet.Add(e)
	t.exp = append(t.exp, e)
	return true
}

func (t *ObservationTable) ensureRow(u string) {
	if _, ok := t.cells[u]; !ok {
		t.cells[u] = make(map[string]Entry)
	}
}

func (t *ObservationTable) Put(u, e string, v Entry) {
	t.ensureRow(u)
	t.cells[u][e] = v
}

// Get returns the cell (u, e); cells never written are Unknown.
func (t *ObservationTable) Get(u, e string) Entry {
	return t.cells[u][e]
}

// Row returns the cells of u in experiment order.
func (t *ObservationTable) Row(u string) []Entry {
	row := make([]Entry, len(t.exp))
	for i, e := range t.exp {
		row[i] = t.Get(u, e)
	}
	return row
}

// RowKey renders the row of u as a string usable as a map key.
func (t *ObservationTable) RowKey(u string) string {
	var sb strings.Builder
	for _, e := range t.exp {
		sb.WriteString(t.Get(u, e).String())
	}
	return sb.String()
}

func (t *ObservationTable) RowsEqual(u, v string) bool {
	for _, e := range t.exp {
		if t.Get(u, e) != t.Get(v, e) {
			return false
		}
	}
	return true
}

// ObviouslyDifferent reports whether some experiment is known for both u and v with
// different values.
func (t *ObservationTable) ObviouslyDifferent(u, v string) bool {
	for _, e := range t.exp {
		a, b := t.Get(u, e), t.Get(v, e)
		if a.Known() && b.Known() && a != b {
			return true
		}
	}
	return false
}

// FindCompatibleRow returns the least red prefix whose row never conflicts with p.
func (t *ObservationTable) FindCompatibleRow(p string) (string, bool) {
	for _, r := range t.Red() {
		if !t.ObviouslyDifferent(r, p) {
			return r, true
		}
	}
	return "", false
}

// Holes lists the Unknown cells, row by row in length-lex order.
func (t *ObservationTable) Holes() []Cell {
	var holes []Cell
	for _, u := range t.Prefixes() {
		for _, e := range t.exp {
			if !t.Get(u, e).Known() {
				holes = append(holes, Cell{Prefix: u, Suffix: e})
			}
		}
	}
	return holes
}

// IsClosed reports whether every blue row equals some red row. If not, it returns the
// least blue prefix whose row matches no red row.
func (t *ObservationTable) IsClosed() (string, bool) {
	reds := make(map[string]struct{}, t.red.Len())
	for u := range t.red {
		reds[t.RowKey(u)] = struct{}{}
	}
	for _, u := range t.Blue() {
		if _, ok := reds[t.RowKey(u)]; !ok {
			return u, false
		}
	}
	return "", true
}

// IsConsistent reports whether red prefixes with equal rows still agree after every
// one-symbol extension. If not, it returns the first disagreement found, scanning
// pairs, symbols and experiments in order.
func (t *ObservationTable) IsConsistent() (Inconsistency, bool) {
	red := t.Red()
	for i, s1 := range red {
		for _, s2 := range red[i+1:] {
			if !t.RowsEqual(s1, s2) {
				continue
			}
			for _, a := range t.alphabet.Symbols() {
				for _, e := range t.exp {
					x, y := t.Get(s1+string(a), e), t.Get(s2+string(a), e)
					if x.Known() && y.Known() && x != y {
						return Inconsistency{First: s1, Second: s2, Symbol: a, Suffix: e}, false
					}
				}
			}
		}
	}
	return Inconsistency{}, true
}

// IsClosedAndConsistent is IsClosed && IsConsistent.
func (t *ObservationTable) IsClosedAndConsistent() bool {
	_, closed := t.IsClosed()
	_, consistent := t.IsConsistent()
	return closed && consistent
}

// String renders the table, red rows first, for debugging.
func (t *ObservationTable) String() string {
	var sb strings.Builder
	sb.WriteString("\t")
	for _, e := range t.exp {
		sb.WriteString(displayWord(e))
		sb.WriteString("\t")
	}
	sb.WriteString("\n")
	for _, group := range [][]string{t.Red(), t.Blue()} {
		for _, u := range group {
			sb.WriteString(displayWord(u))
			for _, e := range t.exp {
				sb.WriteString("\t")
				sb.WriteString(t.Get(u, e).String())
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func displayWord(w string) string {
	if w == "" {
		return "ε"
	}
	return w
}
