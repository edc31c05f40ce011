package enigma

import (
	"fmt"
	"log/slog"
	"strings"
)

// PlugBoard swaps pairs of letters before and after the rotor stack. Its
// wiring is its own inverse, so direction does not matter.
type PlugBoard struct {
	component
	wiring ConnectorMap
	pairs  []string
}

// NewPlugBoard returns a plugboard with no plugs fitted.
func NewPlugBoard(name string, a Alphabet, logger *slog.Logger) *PlugBoard {
	return &PlugBoard{
		component: newComponent(name, TypePlugBoard, a, logger),
		wiring:    IdentityMap(a.Len()),
	}
}

// ParsePlugs splits a space separated list of pairs such as "AV BS CG".
func ParsePlugs(s string) []string {
	return strings.Fields(s)
}

// Configure fits the given plug pairs, replacing any previous ones. A letter
// may appear in only one pair; on error the previous wiring is kept.
func (p *PlugBoard) Configure(pairs []string) error {
	wiring := IdentityMap(p.alphabet.Len())
	used := make(map[int]string, len(pairs)*2)
	clean := make([]string, 0, len(pairs))

	for _, pair := range pairs {
		runes := []rune(strings.ToUpper(strings.TrimSpace(pair)))
		if len(runes) != 2 {
			return fmt.Errorf("%w: %q is not a pair", ErrInvalidPlugs, pair)
		}
		first, ok1 := p.alphabet.Index(runes[0])
		second, ok2 := p.alphabet.Index(runes[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("%w: %q uses a letter outside the alphabet", ErrInvalidPlugs, pair)
		}
		if first == second {
			return fmt.Errorf("%w: %q connects a letter to itself", ErrInvalidPlugs, pair)
		}
		for _, c := range []int{first, second} {
			if prev, dup := used[c]; dup {
				return fmt.Errorf("%w: %c is already plugged by %q", ErrInvalidPlugs, p.alphabet.symbols[c], prev)
			}
			used[c] = string(runes)
		}
		wiring[first], wiring[second] = wiring[second], wiring[first]
		clean = append(clean, string(runes))
	}

	p.wiring = wiring
	p.pairs = clean
	return nil
}

// Pairs returns the fitted pairs in the order they were given.
func (p *PlugBoard) Pairs() []string {
	return append([]string(nil), p.pairs...)
}

// Map returns a copy of the wiring.
func (p *PlugBoard) Map() ConnectorMap { return p.wiring.Clone() }

// Encode returns the swapped connector for either direction.
func (p *PlugBoard) Encode(dir Direction, in int) int {
	out := p.wiring[in]
	p.fireEncode(dir, in, out)
	return out
}
