package enigma

import "errors"

var (
	// ErrInvalidAlphabet indicates an empty alphabet or one with repeated symbols.
	ErrInvalidAlphabet = errors.New("enigma: alphabet must be non-empty with distinct symbols")
	// ErrInvalidWiring indicates a wiring string that is not a permutation of the alphabet.
	ErrInvalidWiring = errors.New("enigma: wiring is not a permutation of the alphabet")
	// ErrInvalidPlugs indicates malformed, unknown or overlapping plug pairs.
	ErrInvalidPlugs = errors.New("enigma: invalid plug pairs")
	// ErrInvalidPosition indicates a start or ring position outside the alphabet.
	ErrInvalidPosition = errors.New("enigma: position outside the alphabet")
	// ErrPositionCount indicates a position list whose length differs from the rotor count.
	ErrPositionCount = errors.New("enigma: position count does not match rotor count")
	// ErrNoRotors indicates a configuration without rotors.
	ErrNoRotors = errors.New("enigma: at least one rotor is required")
)
