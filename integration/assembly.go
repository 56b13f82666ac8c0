package integration

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-reclaim/registry"
	"github.com/rony4d/go-reclaim/registry/memstore"
	"github.com/rony4d/go-reclaim/registry/pebblestore"
	"github.com/rony4d/go-reclaim/verifier"
)

// Engine is a registry plus a verifier reading from it.
type Engine struct {
	Registry *registry.Registry
	Verifier *verifier.Verifier
}

// OpenStore opens the backend named by preset.
func OpenStore(preset StoragePreset, dataDir string) (registry.Store, error) {
	switch preset.Backend {
	case BackendMemory:
		return memstore.New(), nil
	case BackendPebble:
		return pebblestore.Open(preset.Path(dataDir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", preset.Backend)
	}
}

// MakeEngine opens the store for preset and wires a registry and verifier
// on top of it. Close the engine to release the store.
func MakeEngine(preset StoragePreset, dataDir string, logger logrus.FieldLogger) (*Engine, error) {
	if logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		logger = l
	}
	store, err := OpenStore(preset, dataDir)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Open(store, logger.WithField("module", "registry"))
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"storage": preset.Name,
		"path":    preset.Path(dataDir),
		"epoch":   reg.CurrentEpoch(),
	}).Debug("Registry opened")

	return &Engine{
		Registry: reg,
		Verifier: verifier.New(reg, logger.WithField("module", "verifier")),
	}, nil
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.Registry.Close()
}
