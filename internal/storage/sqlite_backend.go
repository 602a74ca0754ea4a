package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // register sqlite driver
)

// schemaDDL defines the key-value table used by the SQLite backend.
//
// Each row holds one whole task list as a JSON array.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS task_lists (
    storage_key TEXT PRIMARY KEY,
    payload TEXT NOT NULL DEFAULT '[]',
    updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteBackend implements Backend using a SQLite database file.
//
// Connections are opened per call, matching the short-lived CLI and request
// scoped usage. WAL mode lets a web server and a CLI share the file.
type SQLiteBackend struct {
	// DBPath is the absolute path to the SQLite database file.
	DBPath string
}

// NewSQLiteBackend creates a SQLiteBackend and initializes the schema.
//
// Parent directories are created if they don't exist.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	backend := &SQLiteBackend{
		DBPath: dbPath,
	}

	if err := backend.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

// connect opens a database handle with WAL journaling enabled.
func (b *SQLiteBackend) connect(ctx context.Context) (*sql.DB, error) {
	dir := filepath.Dir(b.DBPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return db, nil
}

func (b *SQLiteBackend) ensureSchema() error {
	ctx := context.Background()
	db, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to execute schema DDL: %w", err)
	}

	return nil
}

// Load reads the task list stored under key.
//
// A missing row or an undecodable payload yields an empty slice.
func (b *SQLiteBackend) Load(ctx context.Context, key string) ([]Task, error) {
	db, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	var payload string
	err = db.QueryRowContext(ctx,
		`SELECT payload FROM task_lists WHERE storage_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return make([]Task, 0), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task list: %w", err)
	}

	return DecodeTasks([]byte(payload)), nil
}

// Save upserts the task list stored under key.
func (b *SQLiteBackend) Save(ctx context.Context, key string, tasks []Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	db, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx,
		`INSERT INTO task_lists (storage_key, payload, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(storage_key) DO UPDATE SET
		     payload = excluded.payload,
		     updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save task list: %w", err)
	}

	return nil
}
