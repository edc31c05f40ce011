package app

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
)

// MachineConfig is the machine section of the config file.
type MachineConfig struct {
	Name      string   `yaml:"name"`
	Model     string   `yaml:"model,omitempty"`
	Reflector string   `yaml:"reflector"`
	EntryDisc string   `yaml:"entry_disc,omitempty"`
	Alphabet  string   `yaml:"alphabet,omitempty"`
	Rotors    []string `yaml:"rotors"`
	// RingSettings is a letter string or a list of one based numbers.
	RingSettings any `yaml:"ring_settings,omitempty"`
	// Plugs is a space separated string or a list of pairs.
	Plugs any    `yaml:"plugs,omitempty"`
	Start string `yaml:"start,omitempty"`
}

// Config contains global runtime configuration.
type Config struct {
	Workspace     string
	LogLevel      string
	InventoryFile string
	Events        []string
	Machine       MachineConfig
}

// DefaultMachine is the key written by `init`: the Scharnhorst message of 1943.
func DefaultMachine() MachineConfig {
	return MachineConfig{
		Name:         "M3",
		Model:        "M3",
		Reflector:    "B",
		Rotors:       []string{"III", "VI", "VIII"},
		RingSettings: []int{1, 8, 13},
		Plugs:        "AN EZ HK IJ LR MQ OT PV SW UX",
		Start:        "UZV",
	}
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultMachine()
	v.SetDefault("workspace", "./work")
	v.SetDefault("log_level", "info")
	v.SetDefault("machine.name", d.Name)
	v.SetDefault("machine.model", d.Model)
	v.SetDefault("machine.reflector", d.Reflector)
	v.SetDefault("machine.rotors", d.Rotors)
	v.SetDefault("machine.ring_settings", d.RingSettings)
	v.SetDefault("machine.plugs", d.Plugs)
	v.SetDefault("machine.start", d.Start)
}

// EnvPrefix prefixes every environment override, e.g. ENIGMAKIT_LOG_LEVEL.
const EnvPrefix = "ENIGMAKIT"

// BindEnv makes every key overridable from the environment. Dots in nested
// keys become underscores: machine.start is ENIGMAKIT_MACHINE_START.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadConfig builds Config from Viper-bound flags, env and config file.
// Machine keys are read one by one so env overrides such as
// ENIGMAKIT_MACHINE_START apply inside the machine section.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		Workspace:     v.GetString("workspace"),
		LogLevel:      v.GetString("log_level"),
		InventoryFile: v.GetString("inventory"),
		Events:        v.GetStringSlice("events"),
		Machine: MachineConfig{
			Name:         v.GetString("machine.name"),
			Model:        v.GetString("machine.model"),
			Reflector:    v.GetString("machine.reflector"),
			EntryDisc:    v.GetString("machine.entry_disc"),
			Alphabet:     v.GetString("machine.alphabet"),
			Rotors:       v.GetStringSlice("machine.rotors"),
			RingSettings: v.Get("machine.ring_settings"),
			Plugs:        v.Get("machine.plugs"),
			Start:        v.GetString("machine.start"),
		},
	}
	return cfg, cfg.Validate()
}

// Validate returns error if configuration is invalid.
func (c Config) Validate() error {
	if c.Workspace == "" {
		return fmt.Errorf("workspace cannot be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Machine.Reflector == "" {
		return fmt.Errorf("machine.reflector cannot be empty")
	}
	if len(c.Machine.Rotors) == 0 {
		return fmt.Errorf("machine.rotors cannot be empty")
	}
	return nil
}

// Settings converts the machine section into engine settings.
func (m MachineConfig) Settings() (enigma.Settings, error) {
	rings, err := enigma.ParsePositions(m.RingSettings)
	if err != nil {
		return enigma.Settings{}, fmt.Errorf("machine.ring_settings: %w", err)
	}
	plugs, err := ParsePlugs(m.Plugs)
	if err != nil {
		return enigma.Settings{}, err
	}
	return enigma.Settings{Rotors: m.Rotors, RingSettings: rings, Plugs: plugs}, nil
}

// ParsePlugs accepts a space separated string or a list of pairs.
func ParsePlugs(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return enigma.ParsePlugs(t), nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("machine.plugs: %v is not a letter pair", e)
			}
			out[i] = strings.TrimSpace(s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("machine.plugs: unsupported value %v", v)
	}
}
