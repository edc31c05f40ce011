package enigma

import (
	"fmt"
	"unicode/utf8"
)

// StandardAlphabet is the 26 letter Latin alphabet used by every military model.
const StandardAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Alphabet is an ordered set of distinct symbols. The position of a symbol is
// its connector number.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an Alphabet from the given symbols.
func NewAlphabet(symbols string) (Alphabet, error) {
	if symbols == "" || !utf8.ValidString(symbols) {
		return Alphabet{}, fmt.Errorf("%w: %q", ErrInvalidAlphabet, symbols)
	}
	a := Alphabet{index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return Alphabet{}, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// Len returns the number of connectors.
func (a Alphabet) Len() int { return len(a.symbols) }

// Index returns the connector for a symbol.
func (a Alphabet) Index(r rune) (int, bool) {
	c, ok := a.index[r]
	return c, ok
}

// Letter returns the symbol for a connector.
func (a Alphabet) Letter(c int) (rune, bool) {
	if c < 0 || c >= len(a.symbols) {
		return 0, false
	}
	return a.symbols[c], true
}

// Normalize folds any integer into 0..Len()-1.
func (a Alphabet) Normalize(c int) int {
	n := len(a.symbols)
	c %= n
	if c < 0 {
		c += n
	}
	return c
}

// String returns the symbols in order.
func (a Alphabet) String() string { return string(a.symbols) }

// ConnectorMap maps an input connector (the index) to an output connector.
type ConnectorMap []int

// BuildMap converts a permutation string into a ConnectorMap: connector i is
// wired to the alphabet position of the i-th symbol of permutation.
func BuildMap(a Alphabet, permutation string) (ConnectorMap, error) {
	runes := []rune(permutation)
	if len(runes) != a.Len() {
		return nil, fmt.Errorf("%w: %q has %d symbols, alphabet has %d", ErrInvalidWiring, permutation, len(runes), a.Len())
	}
	m := make(ConnectorMap, len(runes))
	for i, r := range runes {
		c, ok := a.Index(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not in the alphabet", ErrInvalidWiring, r)
		}
		m[i] = c
	}
	if !m.IsPermutation() {
		return nil, fmt.Errorf("%w: %q is not a permutation", ErrInvalidWiring, permutation)
	}
	return m, nil
}

// IdentityMap returns the straight-through wiring of n connectors.
func IdentityMap(n int) ConnectorMap {
	m := make(ConnectorMap, n)
	for i := range m {
		m[i] = i
	}
	return m
}

// InvertMap returns the map that undoes m.
func InvertMap(m ConnectorMap) ConnectorMap {
	inv := make(ConnectorMap, len(m))
	for in, out := range m {
		inv[out] = in
	}
	return inv
}

// IsPermutation reports whether every connector appears exactly once.
func (m ConnectorMap) IsPermutation() bool {
	seen := make([]bool, len(m))
	for _, out := range m {
		if out < 0 || out >= len(m) || seen[out] {
			return false
		}
		seen[out] = true
	}
	return true
}

// FixedPoints returns the connectors wired to themselves.
func (m ConnectorMap) FixedPoints() []int {
	var fixed []int
	for in, out := range m {
		if in == out {
			fixed = append(fixed, in)
		}
	}
	return fixed
}

// Clone returns an independent copy.
func (m ConnectorMap) Clone() ConnectorMap {
	return append(ConnectorMap(nil), m...)
}
