// Package tasklist implements the task form controller: submission
// validation, persistence through a storage.Backend, deletion by position and
// the rows a page renders.
//
// Every operation reads the whole list fresh, mutates it and writes it back.
// Mutations on the same storage key are serialized within one process;
// separate processes sharing a key can still lose updates.
package tasklist

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/JamesPrial/tasklist/internal/form"
	"github.com/JamesPrial/tasklist/internal/storage"
)

// ErrUnknownPage is returned when a slug names no page of the layout.
var ErrUnknownPage = errors.New("unknown page")

// Board serves every page of a layout from one storage backend.
type Board struct {
	backend storage.Backend
	layout  *form.Layout
	now     func() time.Time
	logger  *log.Logger
	debug   bool

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Board.
type Option func(*Board)

// WithClock sets the time source used for the today-or-later date check.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// WithLogger sets the logger. debug enables per-submission log lines.
func WithLogger(logger *log.Logger, debug bool) Option {
	return func(b *Board) {
		b.logger = logger
		b.debug = debug
	}
}

// NewBoard creates a Board. A nil layout means form.DefaultLayout.
func NewBoard(backend storage.Backend, layout *form.Layout, opts ...Option) *Board {
	if layout == nil {
		layout = form.DefaultLayout()
	}

	b := &Board{
		backend: backend,
		layout:  layout,
		now:     time.Now,
		logger:  log.New(io.Discard, "", 0),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Pages returns the layout's pages in declaration order.
func (b *Board) Pages() []form.Page {
	return b.layout.Pages
}

// Controller returns the controller for the page named slug. An empty slug
// selects the first page.
func (b *Board) Controller(slug string) (*Controller, error) {
	page, ok := b.layout.Page(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
	}

	return &Controller{
		board: b,
		page:  page,
		lock:  b.lockFor(page.StorageKey()),
	}, nil
}

// lockFor returns the mutex guarding key, shared by every page using it.
func (b *Board) lockFor(key string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.locks[key]
	if !ok {
		l = &sync.Mutex{}
		b.locks[key] = l
	}
	return l
}

func (b *Board) debugf(format string, args ...any) {
	if b.debug {
		b.logger.Printf(format, args...)
	}
}
