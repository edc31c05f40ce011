// Package enigma simulates the signal path of the three and four rotor
// Enigma machines.
//
// A Machine is built from named parts held in an inventory.Inventory:
//
//	keyboard -> plugboard -> entry disc -> rotors (fastest first) -> reflector
//	lamps    <- plugboard <- entry disc <- rotors (slowest first) <-
//
// Every key press first steps the rotors, including the middle rotor's
// double step, and then folds the letter through the path and back.
//
// Components report what they do through Listener values. Events are a
// diagnostic side channel only; the cipher never depends on them.
//
// Errors:
//
//   - ErrInvalidAlphabet: empty alphabet or repeated symbols.
//   - ErrInvalidWiring: a wiring string that is not a permutation.
//   - ErrInvalidPlugs: malformed or overlapping plug pairs.
//   - ErrInvalidPosition: a ring or start position outside the alphabet.
//   - ErrPositionCount: position count differs from the rotor count.
//   - ErrNoRotors: Configure called without rotors.
//   - inventory.ErrNotFound: an unknown rotor, reflector or entry disc name.
package enigma
