package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Snapshots provides file-based local persistence for store state. Each
// store saves under its own named key, independent of the remote store,
// so state survives a restart even when the backend is unreachable.
type Snapshots struct {
	basePath string
}

// NewSnapshots creates a Snapshots store and ensures the base directory
// exists.
func NewSnapshots(basePath string) (*Snapshots, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", basePath, err)
	}
	return &Snapshots{basePath: basePath}, nil
}

func (s *Snapshots) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Save writes a snapshot under the given key.
func (s *Snapshots) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Load reads a snapshot into out. It returns false when no snapshot
// exists; a corrupt snapshot is an error the caller may treat as absent.
func (s *Snapshots) Load(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
	}
	return true, nil
}

// Remove deletes a snapshot. Removing an absent key is not an error.
func (s *Snapshots) Remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot %s: %w", key, err)
	}
	return nil
}
