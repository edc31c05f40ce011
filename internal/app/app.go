package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tldr-it-stepankutaj/enigmakit/internal/enigma"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/inventory"
	"github.com/tldr-it-stepankutaj/enigmakit/internal/models"
)

// Context carries app-wide dependencies and metadata.
type Context struct {
	Ctx       context.Context
	Config    Config
	Workspace WorkspaceHandle
	Now       time.Time
	Logger    *slog.Logger
	Inventory *inventory.Inventory
	Models    *models.Registry
}

// WorkspaceHandle is a minimal contract the workspace package provides.
type WorkspaceHandle interface {
	Path(parts ...string) string
}

// LoadInventory returns the standard parts plus any custom file.
func LoadInventory(path string) (*inventory.Inventory, error) {
	inv := inventory.Standard()
	if path == "" {
		return inv, nil
	}
	if err := inventory.LoadFile(inv, path); err != nil {
		return nil, err
	}
	return inv, nil
}

// BuildMachine assembles, keys and positions a machine from the config.
// When a model is named, the rotor order and reflector are checked against it.
func BuildMachine(mc MachineConfig, inv *inventory.Inventory, reg *models.Registry, logger *slog.Logger) (*enigma.Machine, error) {
	if mc.Model != "" {
		if reg == nil {
			reg = models.Standard()
		}
		model, ok := reg.Get(mc.Model)
		if !ok {
			return nil, fmt.Errorf("%w: unknown model %q", models.ErrUnsupported, mc.Model)
		}
		if err := model.Validate(mc.Reflector, mc.Rotors); err != nil {
			return nil, err
		}
	}

	name := mc.Name
	if name == "" {
		name = mc.Model
	}
	m, err := enigma.New(name, inv, enigma.Options{
		Alphabet:  mc.Alphabet,
		EntryDisc: mc.EntryDisc,
		Reflector: mc.Reflector,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	settings, err := mc.Settings()
	if err != nil {
		return nil, err
	}
	if err := m.Configure(settings); err != nil {
		return nil, err
	}
	if mc.Start != "" {
		if err := m.SetStart(enigma.Letters(mc.Start)); err != nil {
			return nil, err
		}
	}
	return m, nil
}
