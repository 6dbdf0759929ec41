// Package state implements contact collection persistence to the filesystem.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/tillbook/internal/contact"
)

// FileStore persists the contact collection as a single indented JSON array.
type FileStore struct {
	path string
}

var _ contact.Repository = (*FileStore)(nil)

// NewFileStore creates a FileStore that reads and writes the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadAll reads the whole collection. A missing or empty file is an empty
// collection. Undecodable content returns an error wrapping contact.ErrCorrupt.
func (s *FileStore) LoadAll() ([]contact.Contact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("state: reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var contacts []contact.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", contact.ErrCorrupt, s.path, err)
	}
	return contacts, nil
}

// SaveAll rewrites the whole collection. The data is written to a temporary
// file in the same directory and renamed over the target.
func (s *FileStore) SaveAll(contacts []contact.Contact) error {
	if contacts == nil {
		contacts = []contact.Contact{}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: creating directory: %w", err)
	}

	data, err := json.MarshalIndent(contacts, "", "    ")
	if err != nil {
		return fmt.Errorf("state: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".contacts-*.tmp")
	if err != nil {
		return fmt.Errorf("state: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("state: writing %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("state: syncing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("state: closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("state: chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("state: replacing %s: %w", s.path, err)
	}
	return nil
}
