package enigma

import (
	"fmt"
	"log/slog"
	"sort"
)

// Rotor is a stepping wiring wheel. Three coordinate systems meet here:
//
//   - logical: a position in the internal wiring table,
//   - physical: a position relative to the neighbouring components, which
//     moves as the rotor turns (logical = physical + rotation),
//   - ring: the lettered ring, offset from the wiring by the ring setting.
//     The window letter and the turnover notches live on the ring.
//
// All arithmetic is modulo the alphabet length.
type Rotor struct {
	component
	forward    ConnectorMap
	backward   ConnectorMap
	notches    []bool
	turnovers  []int
	ringOffset int
	rotation   int
}

// NewRotor builds a rotor from its wiring and turnover letters. An empty
// turnovers string makes a fixed rotor that never steps. ringOffset is
// zero based.
func NewRotor(name string, a Alphabet, wiring, turnovers string, ringOffset int, logger *slog.Logger) (*Rotor, error) {
	m, err := BuildMap(a, wiring)
	if err != nil {
		return nil, err
	}
	r := &Rotor{
		component:  newComponent(name, TypeRotor, a, logger),
		forward:    m,
		backward:   InvertMap(m),
		notches:    make([]bool, a.Len()),
		ringOffset: a.Normalize(ringOffset),
	}
	for _, t := range turnovers {
		c, ok := a.Index(t)
		if !ok {
			return nil, fmt.Errorf("%w: turnover %q is not in the alphabet", ErrInvalidWiring, t)
		}
		if !r.notches[c] {
			r.notches[c] = true
			r.turnovers = append(r.turnovers, c)
		}
	}
	sort.Ints(r.turnovers)
	return r, nil
}

// SetStartPosition turns the rotor so letter shows in the window.
func (r *Rotor) SetStartPosition(letter rune) error {
	pos, ok := r.alphabet.Index(letter)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, letter)
	}
	r.rotation = r.alphabet.Normalize(pos - r.ringOffset)
	return nil
}

// Encode maps a physical input connector to a physical output connector.
func (r *Rotor) Encode(dir Direction, in int) int {
	wiring := r.forward
	if dir != Right {
		wiring = r.backward
	}
	logicalIn := r.alphabet.Normalize(in + r.rotation)
	logicalOut := wiring[logicalIn]
	out := r.alphabet.Normalize(logicalOut - r.rotation)
	r.fireEncode(dir, in, out)
	return out
}

// Step advances the rotor by one position and reports whether it moved off
// a turnover notch.
func (r *Rotor) Step() bool {
	r.rotation = r.alphabet.Normalize(r.rotation + 1)
	turnoverOffset := r.alphabet.Normalize(r.rotation + r.ringOffset)
	turnover := r.notches[r.alphabet.Normalize(turnoverOffset-1)]

	if !r.listeners.empty() {
		r.listeners.fire(Event{
			Kind:       EventStep,
			Name:       r.name,
			Type:       r.kind,
			Output:     string(r.Window()),
			Rotation:   r.rotation,
			RingOffset: r.ringOffset,
			Turnover:   turnover,
			Description: fmt.Sprintf("%s %q stepped to %c (rotation %d, ring %d, turnover %t)",
				r.kind, r.name, r.Window(), r.rotation, r.ringOffset, turnover),
		})
	}
	return turnover
}

// AtTurnover reports whether a notch is exposed right now, so the next step
// of this rotor carries into its left neighbour.
func (r *Rotor) AtTurnover() bool {
	return r.notches[r.alphabet.Normalize(r.rotation+r.ringOffset)]
}

// IsFixed reports whether the rotor has no notches and therefore never steps.
func (r *Rotor) IsFixed() bool { return len(r.turnovers) == 0 }

// Rotation returns the current rotation offset.
func (r *Rotor) Rotation() int { return r.rotation }

// RingOffset returns the zero based ring setting.
func (r *Rotor) RingOffset() int { return r.ringOffset }

// Turnovers returns the ring positions of the notches.
func (r *Rotor) Turnovers() []int { return append([]int(nil), r.turnovers...) }

// Window returns the letter visible in the rotor window.
func (r *Rotor) Window() rune {
	w, _ := r.alphabet.Letter(r.alphabet.Normalize(r.rotation + r.ringOffset))
	return w
}

// Maps returns copies of the forward and backward wiring.
func (r *Rotor) Maps() (forward, backward ConnectorMap) {
	return r.forward.Clone(), r.backward.Clone()
}
