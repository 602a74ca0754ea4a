package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JamesPrial/tasklist/internal/pathutil"
)

// DataDirName is the directory under the base dir that holds local data.
const DataDirName = ".tasklist"

// BackendType returns the configured backend name.
//
// Reads TASKLIST_STORAGE_BACKEND, lowercased and trimmed; defaults to "json".
func BackendType() string {
	backendType := strings.ToLower(strings.TrimSpace(os.Getenv("TASKLIST_STORAGE_BACKEND")))
	if backendType == "" {
		return "json"
	}
	return backendType
}

// GetStorageBackend returns the configured storage backend based on environment variables.
//
// Environment variables:
//   - TASKLIST_STORAGE_BACKEND: "json" (default), "sqlite", "postgres", "mysql" or "memory"
//   - TASKLIST_JSON_DIR: custom JSON directory (default: <baseDir>/.tasklist/lists)
//   - TASKLIST_SQLITE_PATH: custom SQLite path (default: <baseDir>/.tasklist/tasks.db)
//   - TASKLIST_POSTGRES_URL: PostgreSQL connection string, required for "postgres"
//   - TASKLIST_MYSQL_DSN: MySQL DSN, required for "mysql"
//
// Returns error if backend type is unknown, a required connection string is
// missing, or a custom path escapes baseDir.
func GetStorageBackend(baseDir string) (Backend, error) {
	switch backendType := BackendType(); backendType {
	case "json":
		dir, err := getJSONDir(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to determine JSON directory: %w", err)
		}
		return NewJSONBackend(dir), nil

	case "sqlite":
		path, err := getSQLitePath(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to determine SQLite database path: %w", err)
		}
		return NewSQLiteBackend(path)

	case "postgres":
		connStr := strings.TrimSpace(os.Getenv("TASKLIST_POSTGRES_URL"))
		if connStr == "" {
			return nil, fmt.Errorf("TASKLIST_POSTGRES_URL is required for the postgres backend")
		}
		return NewPostgresBackend(connStr)

	case "mysql":
		dsn := strings.TrimSpace(os.Getenv("TASKLIST_MYSQL_DSN"))
		if dsn == "" {
			return nil, fmt.Errorf("TASKLIST_MYSQL_DSN is required for the mysql backend")
		}
		return NewMySQLBackend(dsn)

	case "memory":
		return NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %q. Expected 'json', 'sqlite', 'postgres', 'mysql' or 'memory'", backendType)
	}
}

func getJSONDir(baseDir string) (string, error) {
	customPath := strings.TrimSpace(os.Getenv("TASKLIST_JSON_DIR"))
	if customPath != "" {
		safePath, err := pathutil.ResolveSafePath(baseDir, customPath)
		if err != nil {
			return "", fmt.Errorf("invalid TASKLIST_JSON_DIR: %w", err)
		}
		return safePath, nil
	}

	return filepath.Join(baseDir, DataDirName, "lists"), nil
}

func getSQLitePath(baseDir string) (string, error) {
	customPath := strings.TrimSpace(os.Getenv("TASKLIST_SQLITE_PATH"))
	if customPath != "" {
		safePath, err := pathutil.ResolveSafePath(baseDir, customPath)
		if err != nil {
			return "", fmt.Errorf("invalid TASKLIST_SQLITE_PATH: %w", err)
		}
		return safePath, nil
	}

	return filepath.Join(baseDir, DataDirName, "tasks.db"), nil
}
