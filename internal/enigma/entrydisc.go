package enigma

import "log/slog"

// EntryDisc is the fixed disc between the plugboard and the rotors. On the
// military machines it is wired straight through.
type EntryDisc struct {
	component
	forward  ConnectorMap
	backward ConnectorMap
}

// NewEntryDisc builds an entry disc from a wiring string.
func NewEntryDisc(name string, a Alphabet, wiring string, logger *slog.Logger) (*EntryDisc, error) {
	m, err := BuildMap(a, wiring)
	if err != nil {
		return nil, err
	}
	return &EntryDisc{
		component: newComponent(name, TypeEntryDisc, a, logger),
		forward:   m,
		backward:  InvertMap(m),
	}, nil
}

// Encode maps through the forward wiring on the way out and the inverse on the way back.
func (d *EntryDisc) Encode(dir Direction, in int) int {
	var out int
	if dir == Right {
		out = d.forward[in]
	} else {
		out = d.backward[in]
	}
	d.fireEncode(dir, in, out)
	return out
}

// Maps returns copies of the forward and backward wiring.
func (d *EntryDisc) Maps() (forward, backward ConnectorMap) {
	return d.forward.Clone(), d.backward.Clone()
}
