// Package integration assembles a registry and verifier from configuration.
//
// Storage presets bundle the backend choice into named profiles:
//
//	integration.MemoryPreset() // ephemeral, for tests and one-shot checks
//	integration.DiskPreset()   // pebble database under the data directory
package integration

import (
	"fmt"
	"path/filepath"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendPebble = "pebble"
)

// StoragePreset selects where the epoch registry lives.
type StoragePreset struct {
	Name    string // identifier used by --storage and config files
	Backend string // BackendMemory or BackendPebble
	DBName  string // directory under the data dir, pebble only
}

// DefaultPreset keeps the registry on disk so registered epochs survive
// restarts.
func DefaultPreset() StoragePreset {
	cfg := DiskPreset()
	cfg.Name = "default"
	return cfg
}

// MemoryPreset keeps everything in memory. Nothing survives the process.
func MemoryPreset() StoragePreset {
	return StoragePreset{
		Name:    "memory",
		Backend: BackendMemory,
	}
}

// DiskPreset stores the registry in a pebble database.
func DiskPreset() StoragePreset {
	return StoragePreset{
		Name:    "disk",
		Backend: BackendPebble,
		DBName:  "registry",
	}
}

// GetPresetByName looks up a preset by its identifier.
func GetPresetByName(name string) (StoragePreset, error) {
	switch name {
	case "memory":
		return MemoryPreset(), nil
	case "disk":
		return DiskPreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return StoragePreset{}, fmt.Errorf("unknown storage preset: %q (valid: memory, disk, default)", name)
	}
}

// Path is the pebble directory for dataDir. It is empty for memory presets.
func (p StoragePreset) Path(dataDir string) string {
	if p.Backend != BackendPebble {
		return ""
	}
	return filepath.Join(dataDir, p.DBName)
}
