package tasklist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/storage"
)

// DefaultLayoutFile is looked up in the base dir when no layout is configured.
const DefaultLayoutFile = "tasklist.yaml"

// LayoutPath returns the layout file to load and whether it may be missing.
//
// An explicit path wins, then TASKLIST_LAYOUT, then <baseDir>/tasklist.yaml,
// which is optional. Relative paths are taken from baseDir.
func LayoutPath(baseDir, explicit string) (string, bool) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv("TASKLIST_LAYOUT"))
	}
	if path == "" {
		return filepath.Join(baseDir, DefaultLayoutFile), true
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path, false
}

// DebugEnabled reports whether DEBUG is set.
func DebugEnabled() bool {
	return strings.TrimSpace(os.Getenv("DEBUG")) != ""
}

// OpenBoard loads the layout and the configured storage backend for baseDir.
// Callers should Close the board when done.
func OpenBoard(baseDir, layoutPath string, opts ...Option) (*Board, error) {
	path, optional := LayoutPath(baseDir, layoutPath)
	layout, err := form.LoadLayout(path, optional)
	if err != nil {
		return nil, err
	}

	backend, err := storage.GetStorageBackend(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return NewBoard(backend, layout, opts...), nil
}

// Close releases the backend's resources, if it holds any.
func (b *Board) Close() error {
	if c, ok := b.backend.(storage.Closer); ok {
		return c.Close()
	}
	return nil
}
