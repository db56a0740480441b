package nlstar

import (
	"slices"
	"strings"

	"github.com/geange/inferrer/automaton"
	"github.com/geange/inferrer/internal/words"
)

// Inconsistency names upper prefixes Covered ⊑ Upper whose extensions by Symbol break
// covering on Suffix.
type Inconsistency struct {
	Upper, Covered string
	Symbol         rune
	Suffix         string
}

// Table is the NL* observation table. Upper rows are candidate states, lower rows the
// one-symbol frontier. Every cell is filled as soon as its row or column appears.
type Table struct {
	alphabet automaton.Alphabet
	query    func(string) bool

	rows   map[string]*Row
	upper  words.Set
	lower  words.Set
	exp    []string
	expSet words.Set
}

// NewTable creates a table with upper row ε, lower rows for every symbol and the single
// experiment ε. query answers membership for the cells.
func NewTable(alphabet automaton.Alphabet, query func(string) bool) *Table {
	t := &Table{
		alphabet: alphabet,
		query:    query,
		rows:     make(map[string]*Row),
		upper:    words.NewSet(),
		lower:    words.NewSet(),
		expSet:   words.NewSet(),
	}
	t.AddExperiment("")
	t.AddUpper("")
	return t
}

func (t *Table) Upper() []string {
	return t.upper.Sorted()
}

func (t *Table) Lower() []string {
	return t.lower.Sorted()
}

// Experiments returns the columns in insertion order.
func (t *Table) Experiments() []string {
	return slices.Clone(t.exp)
}

func (t *Table) Row(u string) *Row {
	return t.rows[u]
}

// AddUpper makes u an upper row and adds its one-symbol extensions as lower rows.
func (t *Table) AddUpper(u string) {
	t.lower.Remove(u)
	t.upper.Add(u)
	t.ensureRow(u)
	for _, a := range t.alphabet.Symbols() {
		ua := u + string(a)
		if t.upper.Has(ua) {
			continue
		}
		t.lower.Add(ua)
		t.ensureRow(ua)
	}
}

// AddExperiment adds column e, fills it for every row and reports whether it was new.
func (t *Table) AddExperiment(e string) bool {
	if t.expSet.Has(e) {
		return false
	}
	t.expSet.Add(e)
	t.exp = append(t.exp, e)
	i := len(t.exp) - 1
	for u, r := range t.rows {
		r.Set(i, t.query(u+e))
	}
	return true
}

func (t *Table) ensureRow(u string) {
	if _, ok := t.rows[u]; ok {
		return
	}
	r := NewRow(u)
	for i, e := range t.exp {
		r.Set(i, t.query(u+e))
	}
	t.rows[u] = r
}

func (t *Table) allRows() []*Row {
	out := make([]*Row, 0, len(t.rows))
	for _, u := range append(t.Upper(), t.Lower()...) {
		out = append(out, t.rows[u])
	}
	return out
}

// IsPrime reports whether the row of u is not the join of other rows of the table.
func (t *Table) IsPrime(u string) bool {
	return !t.rows[u].IsComposed(t.allRows())
}

// UpperPrimes returns one prefix per distinct prime upper row, the length-lex least
// one, in length-lex order.
func (t *Table) UpperPrimes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, u := range t.Upper() {
		r := t.rows[u]
		if seen[r.Key()] || !t.IsPrime(u) {
			continue
		}
		seen[r.Key()] = true
		out = append(out, u)
	}
	return out
}

// IsClosed reports whether every lower row is the join of the upper primes it covers.
// When it is not, the returned prefix is the least lower prime row that breaks this and
// should be promoted.
func (t *Table) IsClosed() (string, bool) {
	var primes []*Row
	for _, u := range t.UpperPrimes() {
		primes = append(primes, t.rows[u])
	}

	closed := true
	for _, u := range t.Lower() {
		if t.composedOf(t.rows[u], primes) {
			continue
		}
		closed = false
		if t.IsPrime(u) {
			return u, false
		}
	}
	if closed {
		return "", true
	}
	// A lower row failed but every lower prime passed; promote the least failing row.
	for _, u := range t.Lower() {
		if !t.composedOf(t.rows[u], primes) {
			return u, false
		}
	}
	return "", true
}

func (t *Table) composedOf(r *Row, primes []*Row) bool {
	var below []*Row
	for _, p := range primes {
		if p.CoveredBy(r) {
			below = append(below, p)
		}
	}
	return Join(below...).Equal(r)
}

// IsConsistent checks that row(u') ⊑ row(u) implies row(u'a) ⊑ row(ua) for all upper
// u, u' and symbols a.
func (t *Table) IsConsistent() (Inconsistency, bool) {
	upper := t.Upper()
	for _, u := range upper {
		for _, v := range upper {
			if u == v || !t.rows[v].CoveredBy(t.rows[u]) {
				continue
			}
			for _, a := range t.alphabet.Symbols() {
				ua, va := t.rows[u+string(a)], t.rows[v+string(a)]
				for i, e := range t.exp {
					if va.Get(i) && !ua.Get(i) {
						return Inconsistency{Upper: u, Covered: v, Symbol: a, Suffix: e}, false
					}
				}
			}
		}
	}
	return Inconsistency{}, true
}

func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString("|")
	for _, e := range t.exp {
		sb.WriteString(" " + displayWord(e))
	}
	sb.WriteString("\n")
	write := func(u string, marker string) {
		sb.WriteString(marker + displayWord(u) + " |")
		r := t.rows[u]
		for i := range t.exp {
			if r.Get(i) {
				sb.WriteString(" 1")
			} else {
				sb.WriteString(" 0")
			}
		}
		sb.WriteString("\n")
	}
	for _, u := range t.Upper() {
		write(u, "U ")
	}
	for _, u := range t.Lower() {
		write(u, "L ")
	}
	return sb.String()
}

func displayWord(w string) string {
	if w == "" {
		return "ε"
	}
	return w
}
