package storage_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// ---------------------------------------------------------------------------
// Shared backend contract
// ---------------------------------------------------------------------------

// sampleTasks returns three well-formed tasks including non-ASCII text.
func sampleTasks() []storage.Task {
	return []storage.Task{
		{Name1: "Ana", Name2: "Visita", Date: "2025-01-01"},
		{Name1: "Médico", Name2: "Revisión anual", Date: "2025-02-14"},
		{Name1: "Luis", Name2: "Llamada", Date: "2025-03-30"},
	}
}

// runBackendContract exercises the behaviour every Backend must share.
// newBackend must return a fresh, empty backend.
func runBackendContract(t *testing.T, newBackend func(t *testing.T) storage.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key loads empty non-nil slice", func(t *testing.T) {
		b := newBackend(t)
		got, err := b.Load(ctx, "absent")
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if got == nil {
			t.Fatal("Load() returned nil slice, want empty")
		}
		if len(got) != 0 {
			t.Fatalf("Load() returned %d tasks, want 0", len(got))
		}
	})

	t.Run("round trip preserves content and order", func(t *testing.T) {
		b := newBackend(t)
		want := sampleTasks()
		if err := b.Save(ctx, storage.DefaultKey, want); err != nil {
			t.Fatalf("Save() unexpected error: %v", err)
		}
		got, err := b.Load(ctx, storage.DefaultKey)
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("save replaces prior content", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Save(ctx, "k", sampleTasks()); err != nil {
			t.Fatalf("Save() first: %v", err)
		}
		want := []storage.Task{{Name1: "x", Name2: "y", Date: "2030-01-01"}}
		if err := b.Save(ctx, "k", want); err != nil {
			t.Fatalf("Save() second: %v", err)
		}
		got, err := b.Load(ctx, "k")
		if err != nil {
			t.Fatalf("Load(): %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Load() = %+v, want %+v", got, want)
		}
	})

	t.Run("save empty list clears", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Save(ctx, "k", sampleTasks()); err != nil {
			t.Fatalf("Save(): %v", err)
		}
		if err := b.Save(ctx, "k", nil); err != nil {
			t.Fatalf("Save(nil): %v", err)
		}
		got, err := b.Load(ctx, "k")
		if err != nil {
			t.Fatalf("Load(): %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Load() returned %d tasks, want 0", len(got))
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		b := newBackend(t)
		a := []storage.Task{{Name1: "a", Name2: "a", Date: "2030-01-01"}}
		c := []storage.Task{{Name1: "c", Name2: "c", Date: "2030-01-02"}}
		if err := b.Save(ctx, "tasks_a", a); err != nil {
			t.Fatalf("Save(a): %v", err)
		}
		if err := b.Save(ctx, "tasks_c", c); err != nil {
			t.Fatalf("Save(c): %v", err)
		}
		gotA, _ := b.Load(ctx, "tasks_a")
		gotC, _ := b.Load(ctx, "tasks_c")
		if !reflect.DeepEqual(gotA, a) {
			t.Errorf("Load(tasks_a) = %+v, want %+v", gotA, a)
		}
		if !reflect.DeepEqual(gotC, c) {
			t.Errorf("Load(tasks_c) = %+v, want %+v", gotC, c)
		}
	})
}
