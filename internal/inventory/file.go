package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of custom component definitions.
type File struct {
	Rotors     []RotorSpec  `yaml:"rotors,omitempty" toml:"rotors,omitempty"`
	Reflectors []WiringSpec `yaml:"reflectors,omitempty" toml:"reflectors,omitempty"`
	EntryDiscs []WiringSpec `yaml:"entry_discs,omitempty" toml:"entry_discs,omitempty"`
}

// LoadFile reads a YAML or TOML definition file (chosen by extension) and
// adds its components to inv. Definitions with an existing name replace the
// earlier ones.
func LoadFile(inv *Inventory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read inventory file: %w", err)
	}

	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return fmt.Errorf("unsupported inventory file type: %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse inventory file: %w", err)
	}

	for _, r := range f.Rotors {
		if r.Name == "" || r.Wiring == "" {
			return fmt.Errorf("inventory file %s: rotor needs a name and wiring", path)
		}
		inv.AddRotor(r.Name, r.Wiring, r.Turnovers)
	}
	for _, r := range f.Reflectors {
		if r.Name == "" || r.Wiring == "" {
			return fmt.Errorf("inventory file %s: reflector needs a name and wiring", path)
		}
		inv.AddReflector(r.Name, r.Wiring)
	}
	for _, d := range f.EntryDiscs {
		if d.Name == "" || d.Wiring == "" {
			return fmt.Errorf("inventory file %s: entry disc needs a name and wiring", path)
		}
		inv.AddEntryDisc(d.Name, d.Wiring)
	}
	return nil
}
