// Package storage provides the keyed persistence port for task lists.
//
// A task list is an ordered sequence of Task records stored under a single
// storage key. Every backend reads and writes the whole sequence at once:
// callers load, mutate and save, with no partial updates.
package storage

import "context"

// DefaultKey is the storage key used when a page does not name one.
const DefaultKey = "tasks_default"

// Task is a single row of a task list.
//
// All three fields hold the display strings the user saw when submitting.
// The JSON tags define the persisted payload shared by every backend.
type Task struct {
	// Name1 is the first field (usually a name or category).
	Name1 string `json:"name1"`

	// Name2 is the second field.
	Name2 string `json:"name2"`

	// Date is the submitted date string, compared by exact equality.
	Date string `json:"date"`
}

// Valid reports whether all three fields are non-empty.
func (t Task) Valid() bool {
	return t.Name1 != "" && t.Name2 != "" && t.Date != ""
}

// Backend defines the contract for task list persistence.
//
// Implementations must treat a missing key and an undecodable payload the
// same way: Load returns an empty, non-nil slice and no error. Errors are
// reserved for infrastructure failures such as an unreachable database.
type Backend interface {
	// Load returns the task list stored under key in insertion order.
	Load(ctx context.Context, key string) ([]Task, error)

	// Save replaces the task list stored under key with tasks.
	Save(ctx context.Context, key string, tasks []Task) error
}

// Closer is implemented by backends holding a connection pool.
type Closer interface {
	Close() error
}
