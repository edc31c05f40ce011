package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/app"
)

// ConfigFile is the name of the config file written by init.
const ConfigFile = "enigmakit.yaml"

// ErrExists is returned when init would overwrite an existing config file.
var ErrExists = errors.New("workspace: config file already exists")

// Handle implements app.WorkspaceHandle and provides helper methods.
type Handle struct {
	Root string
}

// Path joins workspace root with provided parts.
func (h Handle) Path(parts ...string) string {
	all := append([]string{h.Root}, parts...)
	return filepath.Join(all...)
}

// ConfigPath is where init writes the config file.
func (h Handle) ConfigPath() string { return h.Path(ConfigFile) }

// Ensure creates the workspace directory structure if missing.
func Ensure(root string) (Handle, error) {
	h := Handle{Root: root}
	dirs := []string{
		root,
		filepath.Join(root, "jobs"),
		filepath.Join(root, "reports"),
		filepath.Join(root, "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return h, fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return h, nil
}

type fileConfig struct {
	Workspace string            `yaml:"workspace"`
	LogLevel  string            `yaml:"log_level"`
	Inventory string            `yaml:"inventory,omitempty"`
	Events    []string          `yaml:"events,omitempty"`
	Machine   app.MachineConfig `yaml:"machine"`
}

// WriteConfig writes cfg as the workspace config file. An existing file is
// kept unless force is set.
func (h Handle) WriteConfig(cfg app.Config, force bool) (string, error) {
	path := h.ConfigPath()
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
	}
	data, err := yaml.Marshal(fileConfig{
		Workspace: cfg.Workspace,
		LogLevel:  cfg.LogLevel,
		Inventory: cfg.InventoryFile,
		Events:    cfg.Events,
		Machine:   cfg.Machine,
	})
	if err != nil {
		return path, err
	}
	return path, os.WriteFile(path, data, 0o644)
}
