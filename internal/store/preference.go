// Package store holds the server's small pieces of durable local state: the
// preferred budget id and the per-budget category cache. Both are flat files
// with last-write-wins semantics; a mutex serializes access within the
// process.
package store

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// PreferenceStore persists a single preferred budget id as raw text. The file
// content, trimmed of surrounding whitespace, is the value.
type PreferenceStore struct {
	path string

	mu    sync.Mutex
	value string
}

// NewPreferenceStore loads the store from path. A missing file is a normal
// empty state; any other read failure is returned alongside a usable empty
// store.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	s := &PreferenceStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrap(err, "failed to read preference file")
	}

	s.value = strings.TrimSpace(string(data))
	return s, nil
}

// Get returns the in-memory value; ok is false when no value has ever been
// set.
func (s *PreferenceStore) Get() (value string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.value != ""
}

// Set updates the in-memory value and overwrites the backing file with
// exactly that value.
func (s *PreferenceStore) Set(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create preference directory")
	}

	if err := os.WriteFile(s.path, []byte(value), 0o600); err != nil {
		return errors.Wrap(err, "failed to write preference file")
	}

	s.value = value
	return nil
}
