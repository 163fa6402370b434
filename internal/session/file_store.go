package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const historyFileName = "history.json"

// DefaultHistoryPath returns the default location of the session
// snapshot file.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, "quadra", historyFileName)
}

// FileStore persists the session set as a JSON array in a single file.
// Every save rewrites the whole file through a temp-file rename, so a
// concurrent load sees either the old or the new snapshot, never a mix.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the session snapshot. A missing file is an empty history.
func (f *FileStore) Load(_ context.Context) ([]*Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var sessions []*Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}

	return sessions, nil
}

// Save overwrites the snapshot with the given session set.
func (f *FileStore) Save(_ context.Context, sessions []*Session) error {
	if sessions == nil {
		sessions = []*Session{}
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, historyFileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing history: %w", err)
	}

	return nil
}
