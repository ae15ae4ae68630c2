// Package store persists application state as one JSON file per key
// inside a state directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no file exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store reads and writes JSON documents under dir. Keys map to
// "<dir>/<key>.json".
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir. The directory is created lazily
// on the first write.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// GetRaw returns the raw bytes stored under key, or ErrNotFound.
func (s *Store) GetRaw(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read state file for %q: %w", key, err)
	}
	return data, nil
}

// Get unmarshals the document stored under key into v.
func (s *Store) Get(key string, v interface{}) error {
	data, err := s.GetRaw(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse state file for %q: %w", key, err)
	}
	return nil
}

// PutRaw writes raw bytes under key, creating the directory if needed.
func (s *Store) PutRaw(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write state file for %q: %w", key, err)
	}
	s.logger.Debug("State saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Put marshals v with indentation and writes it under key.
func (s *Store) Put(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state for %q: %w", key, err)
	}
	return s.PutRaw(key, data)
}

// Delete removes the document stored under key. Deleting a missing
// key is not an error.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state file for %q: %w", key, err)
	}
	return nil
}
