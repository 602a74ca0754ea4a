package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/JamesPrial/tasklist/internal/pathutil"
)

// JSONBackend implements Backend with one JSON file per storage key.
//
// Files live in Dir and are named after the sanitized key. Writes go through
// a temporary file and os.Rename so readers never see a half-written list.
type JSONBackend struct {
	// Dir is the directory holding the per-key files.
	Dir string
}

// NewJSONBackend creates a JSONBackend rooted at dir.
//
// The directory is created on the first Save.
func NewJSONBackend(dir string) *JSONBackend {
	return &JSONBackend{
		Dir: dir,
	}
}

// PathFor returns the file that stores key.
func (b *JSONBackend) PathFor(key string) string {
	return filepath.Join(b.Dir, pathutil.KeyFileName(key)+".json")
}

// Load reads the task list for key.
//
// Returns an empty slice if the file doesn't exist, can't be read, or holds
// anything other than a JSON array of tasks. Never returns an error.
func (b *JSONBackend) Load(_ context.Context, key string) ([]Task, error) {
	data, err := os.ReadFile(b.PathFor(key))
	if err != nil {
		// Missing or unreadable - start fresh
		return make([]Task, 0), nil
	}

	return DecodeTasks(data), nil
}

// Save atomically replaces the task list for key.
//
// Creates Dir if needed, writes to a temp file in the same directory and
// renames it over the target.
func (b *JSONBackend) Save(_ context.Context, key string, tasks []Task) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return err
	}

	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(b.Dir, "*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return writeErr
	}
	if closeErr != nil {
		_ = os.Remove(tmpPath)
		return closeErr
	}

	if err := os.Rename(tmpPath, b.PathFor(key)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}
