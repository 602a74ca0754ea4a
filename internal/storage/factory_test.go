package storage_test

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/JamesPrial/tasklist/internal/storage"
)

// windowsOrUnixPath returns winPath on Windows, unixPath otherwise.
func windowsOrUnixPath(unixPath, winPath string) string {
	if runtime.GOOS == "windows" {
		return winPath
	}
	return unixPath
}

// clearStorageEnv resets every variable GetStorageBackend reads.
func clearStorageEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TASKLIST_STORAGE_BACKEND",
		"TASKLIST_JSON_DIR",
		"TASKLIST_SQLITE_PATH",
		"TASKLIST_POSTGRES_URL",
		"TASKLIST_MYSQL_DSN",
	} {
		t.Setenv(k, "")
	}
}

func Test_GetStorageBackend_Cases(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantType    string // "json", "sqlite", "memory"
		wantErr     bool
		errContains string
	}{
		{name: "default returns JSON backend", wantType: "json"},
		{name: "explicit json", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "json"}, wantType: "json"},
		{name: "case insensitive JSON", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "JSON"}, wantType: "json"},
		{name: "whitespace trimmed", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "  sqlite  "}, wantType: "sqlite"},
		{name: "mixed case sqlite", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "SQLite"}, wantType: "sqlite"},
		{name: "memory", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "memory"}, wantType: "memory"},
		{name: "whitespace-only defaults to JSON", env: map[string]string{"TASKLIST_STORAGE_BACKEND": "   "}, wantType: "json"},
		{
			name:        "unknown backend",
			env:         map[string]string{"TASKLIST_STORAGE_BACKEND": "redis"},
			wantErr:     true,
			errContains: "unknown",
		},
		{
			name:        "postgres without URL",
			env:         map[string]string{"TASKLIST_STORAGE_BACKEND": "postgres"},
			wantErr:     true,
			errContains: "TASKLIST_POSTGRES_URL",
		},
		{
			name:        "mysql without DSN",
			env:         map[string]string{"TASKLIST_STORAGE_BACKEND": "mysql"},
			wantErr:     true,
			errContains: "TASKLIST_MYSQL_DSN",
		},
		{
			name:     "custom JSON dir accepted",
			env:      map[string]string{"TASKLIST_JSON_DIR": "data/lists"},
			wantType: "json",
		},
		{
			name:    "JSON dir escape rejected",
			env:     map[string]string{"TASKLIST_JSON_DIR": "../../../etc"},
			wantErr: true,
		},
		{
			name: "SQLite absolute path escape rejected",
			env: map[string]string{
				"TASKLIST_STORAGE_BACKEND": "sqlite",
				"TASKLIST_SQLITE_PATH":     windowsOrUnixPath("/etc/evil.db", `C:\Windows\evil.db`),
			},
			wantErr: true,
		},
		{
			name: "SQLite relative path escape rejected",
			env: map[string]string{
				"TASKLIST_STORAGE_BACKEND": "sqlite",
				"TASKLIST_SQLITE_PATH":     "../../../etc/evil.db",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv cannot be used with t.Parallel().
			baseDir := t.TempDir()
			clearStorageEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			backend, err := storage.GetStorageBackend(baseDir)

			if tt.wantErr {
				if err == nil {
					t.Fatal("GetStorageBackend() expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(strings.ToLower(err.Error()), strings.ToLower(tt.errContains)) {
					t.Errorf("GetStorageBackend() error = %q, want it to contain %q", err.Error(), tt.errContains)
				}
				if backend != nil {
					t.Errorf("GetStorageBackend() returned non-nil backend on error: %v", backend)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetStorageBackend() unexpected error: %v", err)
			}

			switch tt.wantType {
			case "json":
				if _, ok := backend.(*storage.JSONBackend); !ok {
					t.Fatalf("GetStorageBackend() returned %T, want *storage.JSONBackend", backend)
				}
			case "sqlite":
				if _, ok := backend.(*storage.SQLiteBackend); !ok {
					t.Fatalf("GetStorageBackend() returned %T, want *storage.SQLiteBackend", backend)
				}
			case "memory":
				if _, ok := backend.(*storage.MemoryBackend); !ok {
					t.Fatalf("GetStorageBackend() returned %T, want *storage.MemoryBackend", backend)
				}
			}
		})
	}
}

func Test_GetStorageBackend_DefaultJSONDir(t *testing.T) {
	baseDir := t.TempDir()
	clearStorageEnv(t)

	backend, err := storage.GetStorageBackend(baseDir)
	if err != nil {
		t.Fatalf("GetStorageBackend(): %v", err)
	}

	jb := backend.(*storage.JSONBackend)
	want := filepath.Join(baseDir, ".tasklist", "lists")
	if jb.Dir != want {
		t.Errorf("Dir = %q, want %q", jb.Dir, want)
	}
}

func Test_GetStorageBackend_DefaultSQLitePath(t *testing.T) {
	baseDir := t.TempDir()
	clearStorageEnv(t)
	t.Setenv("TASKLIST_STORAGE_BACKEND", "sqlite")

	backend, err := storage.GetStorageBackend(baseDir)
	if err != nil {
		t.Fatalf("GetStorageBackend(): %v", err)
	}

	sb := backend.(*storage.SQLiteBackend)
	want := filepath.Join(baseDir, ".tasklist", "tasks.db")
	if sb.DBPath != want {
		t.Errorf("DBPath = %q, want %q", sb.DBPath, want)
	}
}

func Test_GetStorageBackend_SQLiteFunctional(t *testing.T) {
	baseDir := t.TempDir()
	clearStorageEnv(t)
	t.Setenv("TASKLIST_STORAGE_BACKEND", "sqlite")
	t.Setenv("TASKLIST_SQLITE_PATH", "db/custom.db")

	backend, err := storage.GetStorageBackend(baseDir)
	if err != nil {
		t.Fatalf("GetStorageBackend(): %v", err)
	}

	ctx := context.Background()
	if err := backend.Save(ctx, storage.DefaultKey, sampleTasks()); err != nil {
		t.Fatalf("Save(): %v", err)
	}
	got, err := backend.Load(ctx, storage.DefaultKey)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Load() returned %d tasks, want 3", len(got))
	}
}

func Test_BackendType_Cases(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"", "json"},
		{"  ", "json"},
		{"SQLITE", "sqlite"},
		{" Postgres ", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("TASKLIST_STORAGE_BACKEND", tt.env)
			if got := storage.BackendType(); got != tt.want {
				t.Errorf("BackendType() = %q, want %q", got, tt.want)
			}
		})
	}
}
