package enigma

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/inventory"
)

// Options are the parts of a machine that do not change between messages.
type Options struct {
	// Alphabet defaults to StandardAlphabet.
	Alphabet string
	// EntryDisc defaults to inventory.DefaultEntryDisc.
	EntryDisc string
	Reflector string
	// Logger receives warnings about rejected input; defaults to slog.Default().
	Logger *slog.Logger
}

// Settings are the daily key: rotor order, ring settings and plugs.
type Settings struct {
	// Rotors are inventory names, left to right as installed.
	Rotors []string
	// RingSettings, left to right. Nil means ring position A for every rotor.
	RingSettings Positions
	Plugs        []string
}

// Configuration describes the active setup. Rotors and RingOffsets are left
// to right; ring offsets are zero based.
type Configuration struct {
	Name        string   `json:"name" yaml:"name"`
	Reflector   string   `json:"reflector" yaml:"reflector"`
	EntryDisc   string   `json:"entry_disc" yaml:"entry_disc"`
	Rotors      []string `json:"rotors" yaml:"rotors"`
	RingOffsets []int    `json:"ring_offsets" yaml:"ring_offsets"`
	Plugs       []string `json:"plugs" yaml:"plugs"`
}

// Machine wires a plugboard, an entry disc, a stack of rotors and a reflector
// into a signal path. A Machine must not be used from several goroutines at
// once; independent machines share nothing but the read-only inventory.
type Machine struct {
	component
	inv       *inventory.Inventory
	plugboard *PlugBoard
	entryDisc *EntryDisc
	reflector *Reflector
	// rotors are in signal order: index 0 is the rightmost, fastest rotor.
	rotors []*Rotor
	chain  []SignalComponent
	config Configuration
}

// New builds an unconfigured machine. Until Configure is called the signal
// path has no rotors.
func New(name string, inv *inventory.Inventory, opts Options) (*Machine, error) {
	if opts.Alphabet == "" {
		opts.Alphabet = StandardAlphabet
	}
	if opts.EntryDisc == "" {
		opts.EntryDisc = inventory.DefaultEntryDisc
	}
	a, err := NewAlphabet(opts.Alphabet)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		component: newComponent(name, TypeMachine, a, opts.Logger),
		inv:       inv,
		config: Configuration{
			Name:      name,
			Reflector: opts.Reflector,
			EntryDisc: opts.EntryDisc,
		},
	}
	pb, ed, rf, err := m.buildFixed()
	if err != nil {
		return nil, err
	}
	m.install(pb, ed, rf, nil)
	return m, nil
}

// buildFixed creates fresh plugboard, entry disc and reflector instances.
func (m *Machine) buildFixed() (*PlugBoard, *EntryDisc, *Reflector, error) {
	edSpec, err := m.inv.EntryDisc(m.config.EntryDisc)
	if err != nil {
		return nil, nil, nil, err
	}
	rfSpec, err := m.inv.Reflector(m.config.Reflector)
	if err != nil {
		return nil, nil, nil, err
	}
	ed, err := NewEntryDisc("entry-disc", m.alphabet, edSpec.Wiring, m.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("entry disc %q: %w", edSpec.Name, err)
	}
	rf, err := NewReflector(rfSpec.Name, m.alphabet, rfSpec.Wiring, m.logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reflector %q: %w", rfSpec.Name, err)
	}
	return NewPlugBoard("plugboard", m.alphabet, m.logger), ed, rf, nil
}

func (m *Machine) install(pb *PlugBoard, ed *EntryDisc, rf *Reflector, rotors []*Rotor) {
	m.plugboard, m.entryDisc, m.reflector, m.rotors = pb, ed, rf, rotors
	m.chain = make([]SignalComponent, 0, 2+len(rotors))
	m.chain = append(m.chain, pb, ed)
	for _, r := range rotors {
		m.chain = append(m.chain, r)
	}
}

// Configure installs fresh components for the given key. Every sub-component
// is replaced, so listeners registered before the call are dropped and must
// be registered again. On error the machine is left unchanged.
func (m *Machine) Configure(s Settings) error {
	if len(s.Rotors) == 0 {
		return ErrNoRotors
	}

	ringOffsets := make([]int, len(s.Rotors))
	if s.RingSettings != nil {
		if s.RingSettings.Len() != len(s.Rotors) {
			return fmt.Errorf("%w: %d ring settings for %d rotors", ErrPositionCount, s.RingSettings.Len(), len(s.Rotors))
		}
		idx, err := s.RingSettings.indexes(m.alphabet)
		if err != nil {
			return err
		}
		copy(ringOffsets, idx)
	}

	pb, ed, rf, err := m.buildFixed()
	if err != nil {
		return err
	}
	if err := pb.Configure(s.Plugs); err != nil {
		return err
	}

	// Installed left to right, used right to left.
	rotors := make([]*Rotor, len(s.Rotors))
	for i, name := range s.Rotors {
		spec, err := m.inv.Rotor(name)
		if err != nil {
			return err
		}
		r, err := NewRotor(spec.Name, m.alphabet, spec.Wiring, spec.Turnovers, ringOffsets[i], m.logger)
		if err != nil {
			return fmt.Errorf("rotor %q: %w", name, err)
		}
		rotors[len(s.Rotors)-1-i] = r
	}

	m.listeners = listeners{}
	m.install(pb, ed, rf, rotors)
	m.config.Rotors = append([]string(nil), s.Rotors...)
	m.config.RingOffsets = ringOffsets
	m.config.Plugs = pb.Pairs()
	return nil
}

// SetStart turns the rotors to the given positions, left to right.
func (m *Machine) SetStart(start Positions) error {
	if start == nil || start.Len() != len(m.rotors) {
		n := 0
		if start != nil {
			n = start.Len()
		}
		return fmt.Errorf("%w: %d start positions for %d rotors", ErrPositionCount, n, len(m.rotors))
	}
	idx, err := start.indexes(m.alphabet)
	if err != nil {
		return err
	}
	for i, pos := range idx {
		letter, _ := m.alphabet.Letter(pos)
		if err := m.rotors[len(idx)-1-i].SetStartPosition(letter); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the rotors for one key press.
//
// Engagement is decided from the notch positions before anything moves, then
// applied. The fastest rotor always moves. The middle rotor moves when the
// fastest one is at its notch, and also when its own notch is exposed: that
// is the double step. The third rotor moves when the middle one is at its
// notch. Further rotors never move.
func (m *Machine) Step() {
	n := len(m.rotors)
	if n == 0 {
		return
	}

	atNotch := make([]bool, n)
	for i, r := range m.rotors {
		atNotch[i] = r.AtTurnover()
	}

	engaged := make([]bool, n)
	engaged[0] = true
	if n > 1 {
		engaged[1] = atNotch[0] || atNotch[1]
	}
	if n > 2 {
		engaged[2] = atNotch[1]
	}

	for i, r := range m.rotors {
		if !engaged[i] || r.IsFixed() {
			continue
		}
		if i == 1 && atNotch[1] && !m.listeners.empty() {
			m.listeners.fire(Event{
				Kind:        EventDoubleStep,
				Name:        r.Name(),
				Type:        TypeRotor,
				Output:      string(r.Window()),
				Rotation:    r.Rotation(),
				RingOffset:  r.RingOffset(),
				Turnover:    true,
				Description: fmt.Sprintf("%s %q double steps from %c", TypeRotor, r.Name(), r.Window()),
			})
		}
		r.Step()
	}
}

// KeyPress presses one key and returns the lit lamp. The rotors step before
// the signal flows. Letters are upper-cased; anything outside the alphabet is
// rejected without stepping (a space silently, anything else with a warning).
func (m *Machine) KeyPress(letter rune) (rune, bool) {
	letter = unicode.ToUpper(letter)
	conn, ok := m.LetterToConnector(letter)
	if !ok {
		return 0, false
	}
	m.fire(EventInput, string(letter), "")

	m.Step()

	for _, c := range m.chain {
		conn = c.Encode(Right, conn)
	}
	conn = m.reflector.Encode(TurnAround, conn)
	for i := len(m.chain) - 1; i >= 0; i-- {
		conn = m.chain[i].Encode(Left, conn)
	}

	out, _ := m.ConnectorToLetter(conn)
	m.fire(EventOutput, "", string(out))
	return out, true
}

// Translate sets the start positions and presses every key of text. Rejected
// characters, spaces included, produce no output, so the result can be
// shorter than text.
func (m *Machine) Translate(start Positions, text string) (string, error) {
	if err := m.SetStart(start); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if out, ok := m.KeyPress(r); ok {
			b.WriteRune(out)
		}
	}
	return b.String(), nil
}

func (m *Machine) fire(kind EventKind, in, out string) {
	if m.listeners.empty() {
		return
	}
	desc := fmt.Sprintf("%s %q key %s", TypeMachine, m.name, in)
	if kind == EventOutput {
		desc = fmt.Sprintf("%s %q lamp %s", TypeMachine, m.name, out)
	}
	m.listeners.fire(Event{Kind: kind, Name: m.name, Type: TypeMachine, Input: in, Output: out, Description: desc})
}

// Listen registers l on the machine and on every current sub-component.
// Components installed by a later Configure do not inherit it.
func (m *Machine) Listen(name string, l Listener) {
	m.component.Listen(name, l)
	for _, c := range m.chain {
		c.Listen(name, l)
	}
	m.reflector.Listen(name, l)
}

// Unlisten removes the named listener from the machine and its sub-components.
func (m *Machine) Unlisten(name string) {
	m.component.Unlisten(name)
	for _, c := range m.chain {
		c.Unlisten(name)
	}
	m.reflector.Unlisten(name)
}

// Rotors returns the installed rotors in signal order, fastest first.
func (m *Machine) Rotors() []*Rotor {
	return append([]*Rotor(nil), m.rotors...)
}

// Chain returns the outward signal path: plugboard, entry disc, then rotors
// fastest first. The reflector is not part of it.
func (m *Machine) Chain() []SignalComponent {
	return append([]SignalComponent(nil), m.chain...)
}

// PlugBoard returns the installed plugboard.
func (m *Machine) PlugBoard() *PlugBoard { return m.plugboard }

// EntryDisc returns the installed entry disc.
func (m *Machine) EntryDisc() *EntryDisc { return m.entryDisc }

// Reflector returns the installed reflector.
func (m *Machine) Reflector() *Reflector { return m.reflector }

// Windows returns the letters showing in the rotor windows, left to right.
func (m *Machine) Windows() string {
	out := make([]rune, len(m.rotors))
	for i, r := range m.rotors {
		out[len(m.rotors)-1-i] = r.Window()
	}
	return string(out)
}

// Configuration returns a copy of the active setup.
func (m *Machine) Configuration() Configuration {
	c := m.config
	c.Rotors = append([]string(nil), c.Rotors...)
	c.RingOffsets = append([]int(nil), c.RingOffsets...)
	c.Plugs = append([]string(nil), c.Plugs...)
	return c
}
