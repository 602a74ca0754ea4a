package storage

import (
	"context"
	"sync"
)

// MemoryBackend keeps task lists in process memory.
//
// Payloads are stored encoded, exactly like the persistent backends, so a
// MemoryBackend behaves the same on round-trips and corrupt data.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Load returns the list stored under key, or an empty slice.
func (b *MemoryBackend) Load(_ context.Context, key string) ([]Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return DecodeTasks(b.data[key]), nil
}

// Save replaces the list stored under key.
func (b *MemoryBackend) Save(_ context.Context, key string, tasks []Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = data
	return nil
}

// SetRaw stores payload verbatim under key, bypassing encoding.
func (b *MemoryBackend) SetRaw(key string, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = append([]byte(nil), payload...)
}
