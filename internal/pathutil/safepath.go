// Package pathutil resolves user-supplied paths and storage keys to safe
// filesystem locations.
//
// Custom data paths from the environment must stay within the base
// directory, and storage keys taken from page layouts must map to a single
// file name that cannot climb out of the data directory.
package pathutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveSafePath resolves userPath relative to baseDir and verifies that the
// result, after symlink resolution, is still inside baseDir.
//
// Relative paths are joined to baseDir; absolute paths are accepted only if
// they land inside it. Paths that don't exist yet are resolved through their
// nearest existing ancestor.
//
// Returns an error for empty or whitespace-only paths, paths containing null
// bytes, and paths that escape baseDir.
func ResolveSafePath(baseDir, userPath string) (string, error) {
	if strings.TrimSpace(userPath) == "" {
		return "", fmt.Errorf("path is empty or whitespace-only")
	}
	if strings.Contains(userPath, "\x00") {
		return "", fmt.Errorf("path contains null byte")
	}

	candidate := userPath
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	candidate = filepath.Clean(candidate)

	resolved, err := resolveExisting(candidate)
	if err != nil {
		return "", err
	}

	baseResolved, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(baseResolved, resolved)
	if err != nil {
		return "", fmt.Errorf("failed to compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %s", userPath)
	}

	return resolved, nil
}

// resolveExisting evaluates symlinks for the longest existing prefix of path
// and re-appends the components that don't exist yet.
func resolveExisting(path string) (string, error) {
	current := path
	var missing []string

	for {
		if _, err := os.Lstat(current); err == nil {
			resolved, err := filepath.EvalSymlinks(current)
			if err != nil {
				return "", fmt.Errorf("failed to resolve symlinks: %w", err)
			}
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent directory found")
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// maxKeyName bounds the readable part of a key file name.
const maxKeyName = 64

// KeyFileName maps a storage key to a file name without extension.
//
// Letters, digits, '-' and '_' are kept; every other byte becomes '_'. When
// the key had to be altered or truncated, a short hash of the original key is
// appended so distinct keys never share a file.
func KeyFileName(key string) string {
	var b strings.Builder
	altered := false

	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
			altered = true
		}
	}

	name := b.String()
	if len(name) > maxKeyName {
		name = name[:maxKeyName]
		altered = true
	}
	if name == "" {
		name = "_"
		altered = true
	}

	if altered {
		sum := sha256.Sum256([]byte(key))
		name += "-" + hex.EncodeToString(sum[:4])
	}

	return name
}
