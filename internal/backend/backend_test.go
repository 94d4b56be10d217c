package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/cosmocash/internal/config"
	"github.com/mmynk/cosmocash/internal/storage/memory"
	"github.com/mmynk/cosmocash/internal/storage/sqlite"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := Open(ctx, &config.Config{Backend: config.BackendMemory})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*memory.Store); !ok {
			t.Errorf("Expected *memory.Store, got %T", store)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "cosmocash.db")
		store, err := Open(ctx, &config.Config{Backend: config.BackendSQLite, SQLitePath: path})
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer store.Close()
		if _, ok := store.(*sqlite.SQLiteStore); !ok {
			t.Errorf("Expected *sqlite.SQLiteStore, got %T", store)
		}
		if err := store.Put(ctx, "k", []byte("v")); err != nil {
			t.Errorf("Put failed: %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Open(ctx, &config.Config{Backend: "sheets"}); err == nil {
			t.Error("Expected error for unknown backend")
		}
		if _, err := Open(ctx, nil); err == nil {
			t.Error("Expected error for nil config")
		}
	})
}
