// Package inventory is the catalog of named wiring definitions (rotors,
// reflectors and entry discs) that machines are assembled from.
//
// An Inventory is filled once, typically with Standard, and then only read.
// Lookups return values, so every machine owns its own copy of a definition.
package inventory

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound indicates a lookup for a name that was never registered.
var ErrNotFound = errors.New("inventory: component not found")

// RotorSpec defines a rotor type. Turnovers holds the window letters at which
// the rotor carries into its neighbour; it is empty for fixed rotors.
type RotorSpec struct {
	Name      string `yaml:"name" toml:"name" json:"name"`
	Wiring    string `yaml:"wiring" toml:"wiring" json:"wiring"`
	Turnovers string `yaml:"turnovers" toml:"turnovers" json:"turnovers"`
}

// Fixed reports whether the rotor never steps.
func (s RotorSpec) Fixed() bool { return s.Turnovers == "" }

// WiringSpec defines a reflector or entry disc.
type WiringSpec struct {
	Name   string `yaml:"name" toml:"name" json:"name"`
	Wiring string `yaml:"wiring" toml:"wiring" json:"wiring"`
}

// Filter selects rotor names by stepping behaviour.
type Filter int

const (
	All Filter = iota
	Fixed
	Stepping
)

// Inventory maps names to definitions. It is not safe for concurrent
// mutation; once filled it may be read from any number of goroutines.
type Inventory struct {
	rotors     map[string]RotorSpec
	reflectors map[string]WiringSpec
	entryDiscs map[string]WiringSpec
}

// New returns an empty Inventory.
func New() *Inventory {
	return &Inventory{
		rotors:     make(map[string]RotorSpec),
		reflectors: make(map[string]WiringSpec),
		entryDiscs: make(map[string]WiringSpec),
	}
}

// AddRotor registers a rotor type, replacing one of the same name.
func (inv *Inventory) AddRotor(name, wiring, turnovers string) {
	inv.rotors[name] = RotorSpec{Name: name, Wiring: wiring, Turnovers: turnovers}
}

// AddReflector registers a reflector, replacing one of the same name.
func (inv *Inventory) AddReflector(name, wiring string) {
	inv.reflectors[name] = WiringSpec{Name: name, Wiring: wiring}
}

// AddEntryDisc registers an entry disc, replacing one of the same name.
func (inv *Inventory) AddEntryDisc(name, wiring string) {
	inv.entryDiscs[name] = WiringSpec{Name: name, Wiring: wiring}
}

// Rotor looks up a rotor definition.
func (inv *Inventory) Rotor(name string) (RotorSpec, error) {
	s, ok := inv.rotors[name]
	if !ok {
		return RotorSpec{}, fmt.Errorf("%w: rotor %q", ErrNotFound, name)
	}
	return s, nil
}

// Reflector looks up a reflector definition.
func (inv *Inventory) Reflector(name string) (WiringSpec, error) {
	s, ok := inv.reflectors[name]
	if !ok {
		return WiringSpec{}, fmt.Errorf("%w: reflector %q", ErrNotFound, name)
	}
	return s, nil
}

// EntryDisc looks up an entry disc definition.
func (inv *Inventory) EntryDisc(name string) (WiringSpec, error) {
	s, ok := inv.entryDiscs[name]
	if !ok {
		return WiringSpec{}, fmt.Errorf("%w: entry disc %q", ErrNotFound, name)
	}
	return s, nil
}

// RotorNames returns the sorted rotor names matching filter.
func (inv *Inventory) RotorNames(filter Filter) []string {
	names := make([]string, 0, len(inv.rotors))
	for name, s := range inv.rotors {
		switch {
		case filter == Fixed && !s.Fixed():
			continue
		case filter == Stepping && s.Fixed():
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReflectorNames returns the sorted reflector names.
func (inv *Inventory) ReflectorNames() []string { return sortedKeys(inv.reflectors) }

// EntryDiscNames returns the sorted entry disc names.
func (inv *Inventory) EntryDiscNames() []string { return sortedKeys(inv.entryDiscs) }

func sortedKeys(m map[string]WiringSpec) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
