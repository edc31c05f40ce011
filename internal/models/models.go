// Package models describes the historical machine models and checks that a
// key is one that model could actually be set to.
package models

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupported indicates a setup the model could not be set to.
var ErrUnsupported = errors.New("models: setup not supported by model")

// Model is a machine variant: which reflectors it takes, which rotors were
// issued for it and how many rotor slots it has.
type Model struct {
	Name        string
	Description string
	Reflectors  []string
	Rotors      []string
	// FixedRotors may only occupy the leftmost slot.
	FixedRotors []string
	Slots       int
}

// Validate checks reflector and rotor order (left to right) against the model.
func (m Model) Validate(reflector string, rotors []string) error {
	if !contains(m.Reflectors, reflector) {
		return fmt.Errorf("%w: %s does not take reflector %q", ErrUnsupported, m.Name, reflector)
	}
	if len(rotors) != m.Slots {
		return fmt.Errorf("%w: %s has %d rotor slots, got %d rotors", ErrUnsupported, m.Name, m.Slots, len(rotors))
	}
	seen := make(map[string]bool, len(rotors))
	for i, r := range rotors {
		if seen[r] {
			return fmt.Errorf("%w: rotor %q installed twice", ErrUnsupported, r)
		}
		seen[r] = true

		leftmost := i == 0 && len(m.FixedRotors) > 0
		switch {
		case leftmost && contains(m.FixedRotors, r):
		case leftmost:
			return fmt.Errorf("%w: %s needs a fixed rotor %v in the leftmost slot, got %q", ErrUnsupported, m.Name, m.FixedRotors, r)
		case contains(m.Rotors, r):
		case contains(m.FixedRotors, r):
			return fmt.Errorf("%w: fixed rotor %q only fits the leftmost slot", ErrUnsupported, r)
		default:
			return fmt.Errorf("%w: rotor %q was not issued for %s", ErrUnsupported, r, m.Name)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Registry stores known models.
type Registry struct {
	models map[string]Model
}

func NewRegistry() *Registry {
	return &Registry{models: make(map[string]Model)}
}

func (r *Registry) Register(m Model) {
	r.models[m.Name] = m
}

func (r *Registry) Get(name string) (Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// All returns the models sorted by name.
func (r *Registry) All() []Model {
	out := make([]Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Standard returns a registry with the Enigma I, M3 and M4.
func Standard() *Registry {
	r := NewRegistry()
	r.Register(Model{
		Name:        "I",
		Description: "Army and air force Enigma I, three rotors",
		Reflectors:  []string{"A", "B", "C"},
		Rotors:      []string{"I", "II", "III", "IV", "V"},
		Slots:       3,
	})
	r.Register(Model{
		Name:        "M3",
		Description: "Navy M3, three rotors from a set of eight",
		Reflectors:  []string{"B", "C"},
		Rotors:      []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"},
		Slots:       3,
	})
	r.Register(Model{
		Name:        "M4",
		Description: "Navy M4, thin reflector and a fixed fourth rotor",
		Reflectors:  []string{"Thin-B", "Thin-C"},
		Rotors:      []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"},
		FixedRotors: []string{"Beta", "Gamma"},
		Slots:       4,
	})
	return r
}
