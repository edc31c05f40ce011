package enigma

import (
	"fmt"
	"log/slog"
)

// Direction is the way a signal travels through a component.
type Direction int

const (
	// Right is the outward pass, from the keyboard towards the reflector.
	Right Direction = iota
	// Left is the return pass, from the reflector back to the lamps.
	Left
	// TurnAround is used by the reflector, which has no sides.
	TurnAround
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case TurnAround:
		return "turn-around"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ComponentType tags the kind of component that raised an event.
type ComponentType string

const (
	TypeMachine   ComponentType = "Enigma"
	TypePlugBoard ComponentType = "Plugboard"
	TypeEntryDisc ComponentType = "EntryDisc"
	TypeRotor     ComponentType = "Rotor"
	TypeReflector ComponentType = "Reflector"
)

// SignalComponent is one element of the signal path. The set of
// implementations is closed: *PlugBoard, *EntryDisc, *Rotor and *Reflector.
type SignalComponent interface {
	Name() string
	Type() ComponentType
	// Encode maps an input connector to an output connector.
	Encode(dir Direction, connector int) int
	Listen(name string, l Listener)
	Unlisten(name string)

	signalComponent()
}

// component holds what every signal component shares.
type component struct {
	name      string
	kind      ComponentType
	alphabet  Alphabet
	logger    *slog.Logger
	listeners listeners
}

func newComponent(name string, kind ComponentType, a Alphabet, logger *slog.Logger) component {
	if logger == nil {
		logger = slog.Default()
	}
	return component{name: name, kind: kind, alphabet: a, logger: logger}
}

func (c *component) Name() string        { return c.name }
func (c *component) Type() ComponentType { return c.kind }
func (c *component) Alphabet() Alphabet  { return c.alphabet }
func (c *component) signalComponent()    {}

// Listen registers a named listener, replacing one with the same name.
func (c *component) Listen(name string, l Listener) { c.listeners.add(name, l) }

// Unlisten removes a named listener.
func (c *component) Unlisten(name string) { c.listeners.remove(name) }

// LetterToConnector converts a symbol to its connector. Symbols outside the
// alphabet are rejected; a space is rejected without a warning.
func (c *component) LetterToConnector(letter rune) (int, bool) {
	conn, ok := c.alphabet.Index(letter)
	if !ok {
		if letter != ' ' {
			c.logger.Warn("unexpected character", "component", c.name, "character", string(letter))
		}
		return 0, false
	}
	return conn, true
}

// ConnectorToLetter converts a connector back to its symbol.
func (c *component) ConnectorToLetter(connector int) (rune, bool) {
	r, ok := c.alphabet.Letter(connector)
	if !ok {
		c.logger.Warn("unexpected connector", "component", c.name, "connector", connector)
	}
	return r, ok
}

func (c *component) letter(connector int) string {
	r, ok := c.alphabet.Letter(connector)
	if !ok {
		return fmt.Sprint(connector)
	}
	return string(r)
}

// fireEncode emits the input, output and translate events for one pass.
func (c *component) fireEncode(dir Direction, in, out int) {
	if c.listeners.empty() {
		return
	}
	inL, outL := c.letter(in), c.letter(out)
	c.listeners.fire(Event{
		Kind: EventInput, Name: c.name, Type: c.kind, Direction: dir, Input: inL,
		Description: fmt.Sprintf("%s %q received signal on %s", c.kind, c.name, inL),
	})
	c.listeners.fire(Event{
		Kind: EventOutput, Name: c.name, Type: c.kind, Direction: dir, Output: outL,
		Description: fmt.Sprintf("%s %q sent signal on %s", c.kind, c.name, outL),
	})
	c.listeners.fire(Event{
		Kind: EventTranslate, Name: c.name, Type: c.kind, Direction: dir, Input: inL, Output: outL,
		Description: fmt.Sprintf("%s %q translated %s to %s", c.kind, c.name, inL, outL),
	})
}
