package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	d := contains101(t)
	r := NewRunAutomaton(d)

	tests := []struct {
		name string
		s    string
		want bool
	}{
		{"empty", "", false},
		{"exact", "101", true},
		{"embedded", "0010100", true},
		{"absent", "1001", false},
		{"foreign symbol", "1a1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, d.Accepts(tt.s), "Accepts(%v)", tt.s)
			assert.Equalf(t, tt.want, r.Run(tt.s), "Run(%v)", tt.s)
		})
	}

	assert.True(t, NewRunAutomaton(endsWith01(t).ToDFA()).Run("001"))
	assert.False(t, NewRunAutomaton(NewDFA(MustAlphabet("a"))).Run(""))
}
