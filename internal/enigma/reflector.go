package enigma

import "log/slog"

// Reflector sends the signal back through the rotors. It has a single
// wiring table and no notion of sides.
type Reflector struct {
	component
	wiring ConnectorMap
}

// NewReflector builds a reflector from a wiring string. The wiring is not
// checked for being an involution; the historical tables are.
func NewReflector(name string, a Alphabet, wiring string, logger *slog.Logger) (*Reflector, error) {
	m, err := BuildMap(a, wiring)
	if err != nil {
		return nil, err
	}
	return &Reflector{
		component: newComponent(name, TypeReflector, a, logger),
		wiring:    m,
	}, nil
}

// Encode returns the reflected connector; dir is only reported in events.
func (r *Reflector) Encode(dir Direction, in int) int {
	out := r.wiring[in]
	r.fireEncode(dir, in, out)
	return out
}

// Map returns a copy of the wiring.
func (r *Reflector) Map() ConnectorMap { return r.wiring.Clone() }
