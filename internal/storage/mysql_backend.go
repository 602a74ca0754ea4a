package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // register mysql driver
)

const mysqlSchemaDDL = `CREATE TABLE IF NOT EXISTS task_lists (
    storage_key VARCHAR(191) PRIMARY KEY,
    payload LONGTEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// MySQLBackend implements Backend using MySQL.
//
// Unlike the SQLite and PostgreSQL backends it keeps a pooled *sql.DB for
// its whole lifetime; call Close when done. Save uses the INSERT row alias,
// which needs MySQL 8.0.19 or later.
type MySQLBackend struct {
	db *sql.DB
}

// NewMySQLBackend opens dsn, verifies the connection and creates the schema.
func NewMySQLBackend(dsn string) (*MySQLBackend, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(mysqlSchemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &MySQLBackend{db: db}, nil
}

// Close releases the connection pool.
func (b *MySQLBackend) Close() error { return b.db.Close() }

// Load reads the task list stored under key.
func (b *MySQLBackend) Load(ctx context.Context, key string) ([]Task, error) {
	var payload string
	err := b.db.QueryRowContext(ctx,
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
func (b *MySQLBackend) Save(ctx context.Context, key string, tasks []Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	_, err = b.db.ExecContext(ctx,
		`INSERT INTO task_lists (storage_key, payload) VALUES (?, ?) AS new
		 ON DUPLICATE KEY UPDATE payload = new.payload`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save task list: %w", err)
	}

	return nil
}
