package automaton

import (
	"regexp"
	"strings"
)

type Kind int

const (
	REGEXP_UNION         = Kind(iota) // The union of two expressions
	REGEXP_CONCATENATION              // A sequence of two expressions
	REGEXP_REPEAT                     // An expression that repeats
	REGEXP_CHAR                       // A Character
	REGEXP_EMPTY                      // The empty string
)

// RegExp is a regular expression tree produced by state elimination. A nil *RegExp
// denotes the empty language.
type RegExp struct {
	kind       Kind
	exp1, exp2 *RegExp
	c          rune
}

func newContainerNode(kind Kind, exp1, exp2 *RegExp) *RegExp {
	return &RegExp{kind: kind, exp1: exp1, exp2: exp2}
}

func makeChar(c rune) *RegExp {
	return &RegExp{kind: REGEXP_CHAR, c: c}
}

func makeEmpty() *RegExp {
	return &RegExp{kind: REGEXP_EMPTY}
}

func makeUnion(exp1, exp2 *RegExp) *RegExp {
	switch {
	case exp1 == nil:
		return exp2
	case exp2 == nil:
		return exp1
	case exp1.String() == exp2.String():
		return exp1
	}
	return newContainerNode(REGEXP_UNION, exp1, exp2)
}

func makeConcatenation(exp1, exp2 *RegExp) *RegExp {
	switch {
	case exp1 == nil || exp2 == nil:
		return nil
	case exp1.kind == REGEXP_EMPTY:
		return exp2
	case exp2.kind == REGEXP_EMPTY:
		return exp1
	}
	return newContainerNode(REGEXP_CONCATENATION, exp1, exp2)
}

func makeRepeat(exp *RegExp) *RegExp {
	if exp == nil || exp.kind == REGEXP_EMPTY {
		return makeEmpty()
	}
	exp = exp.withoutEmpty()
	if exp.kind == REGEXP_REPEAT {
		return exp
	}
	return newContainerNode(REGEXP_REPEAT, exp, nil)
}

// withoutEmpty drops ε alternatives from a union, since (x|ε)* = x*.
func (r *RegExp) withoutEmpty() *RegExp {
	if r.kind != REGEXP_UNION {
		return r
	}
	var rest *RegExp
	for _, alt := range r.alternatives() {
		if alt.kind != REGEXP_EMPTY {
			rest = makeUnion(rest, alt)
		}
	}
	if rest == nil {
		return makeEmpty()
	}
	return rest
}

func (r *RegExp) alternatives() []*RegExp {
	if r.kind != REGEXP_UNION {
		return []*RegExp{r}
	}
	return append(r.exp1.alternatives(), r.exp2.alternatives()...)
}

// String renders the expression with parentheses only where precedence needs them.
// The empty string renders as "()" and the empty language as "".
func (r *RegExp) String() string {
	var sb strings.Builder
	r.toStringBuilder(&sb)
	return sb.String()
}

func (r *RegExp) toStringBuilder(b *strings.Builder) {
	if r == nil {
		return
	}
	switch r.kind {
	case REGEXP_UNION:
		r.exp1.toStringBuilder(b)
		b.WriteString("|")
		r.exp2.toStringBuilder(b)
	case REGEXP_CONCATENATION:
		r.exp1.group(b, REGEXP_UNION)
		r.exp2.group(b, REGEXP_UNION)
	case REGEXP_REPEAT:
		r.exp1.group(b, REGEXP_UNION, REGEXP_CONCATENATION)
		b.WriteString("*")
	case REGEXP_CHAR:
		b.WriteString(regexp.QuoteMeta(string(r.c)))
	case REGEXP_EMPTY:
		b.WriteString("()")
	}
}

// group writes r, parenthesized if its kind is one of kinds.
func (r *RegExp) group(b *strings.Builder, kinds ...Kind) {
	for _, k := range kinds {
		if r.kind == k {
			b.WriteString("(")
			r.toStringBuilder(b)
			b.WriteString(")")
			return
		}
	}
	r.toStringBuilder(b)
}

// ToRegex converts d to an equivalent regular expression by state elimination
// (Sipser, Lemma 1.60). Two sentinels are added: a virtual initial node with an ε-edge
// to the start state and a virtual final node reached by ε from every accept state.
// States are then eliminated in descending order, folding each path x->s->y into
// xs (ss)* sy | xy.
func (d *DFA) ToRegex() string {
	return d.ToRegExp().String()
}

// ToRegExp is ToRegex returning the expression tree; nil for the empty language.
func (d *DFA) ToRegExp() *RegExp {
	if d.NumStates() == 0 {
		return nil
	}
	n := d.NumStates()
	initial, final := n, n+1
	size := n + 2

	expr := make([][]*RegExp, size)
	for i := range expr {
		expr[i] = make([]*RegExp, size)
	}
	expr[initial][d.start] = makeEmpty()
	for q := 0; q < n; q++ {
		if d.IsAccept(q) {
			expr[q][final] = makeEmpty()
		}
		for j, c := range d.alphabet.symbols {
			if t := d.stepIndex(q, j); t != -1 {
				expr[q][t] = makeUnion(expr[q][t], makeChar(c))
			}
		}
	}

	remaining := make([]bool, size)
	for i := range remaining {
		remaining[i] = true
	}
	for s := n - 1; s >= 0; s-- {
		remaining[s] = false
		loop := makeRepeat(expr[s][s])
		for x := 0; x < size; x++ {
			if !remaining[x] || expr[x][s] == nil {
				continue
			}
			for y := 0; y < size; y++ {
				if !remaining[y] || expr[s][y] == nil {
					continue
				}
				path := makeConcatenation(makeConcatenation(expr[x][s], loop), expr[s][y])
				expr[x][y] = makeUnion(path, expr[x][y])
			}
		}
	}
	return expr[initial][final]
}
