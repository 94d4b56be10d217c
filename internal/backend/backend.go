// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/cosmocash/internal/config"
	"github.com/mmynk/cosmocash/internal/storage"
	"github.com/mmynk/cosmocash/internal/storage/memory"
	"github.com/mmynk/cosmocash/internal/storage/postgres"
	"github.com/mmynk/cosmocash/internal/storage/sqlite"
)

// Open creates the store named by cfg.Backend. The caller closes it.
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app config is nil")
	}

	switch cfg.Backend {
	case config.BackendMemory:
		slog.Info("Storage initialized", "backend", cfg.Backend)
		return memory.New(), nil

	case config.BackendSQLite:
		store, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.Info("Storage initialized", "backend", cfg.Backend, "database", cfg.SQLitePath)
		return store, nil

	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		slog.Info("Storage initialized", "backend", cfg.Backend)
		return store, nil
	}
	return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
}
