package automaton

import "errors"

var (
	ErrEmptySymbol         = errors.New("empty string is not a valid symbol")
	ErrMultiRuneSymbol     = errors.New("symbol must be a single character")
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
	ErrStateOutOfRange     = errors.New("state out of range")
)
