package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/folio/backend/internal/config"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/storage"
)

// openStore builds the contact store selected by STORE_DRIVER. The returned
// func releases its resources.
func openStore(ctx context.Context, cfg *config.Config) (repository.ContactStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverFile:
		store := storage.NewLocalStorage(cfg.DataDir)
		if err := store.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("data dir %s: %w", cfg.DataDir, err)
		}
		return repository.NewFileContactRepository(store), func() {}, nil

	case config.DriverSQLite:
		db, err := repository.NewGormDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewGormContactRepository(db)
		return repo, func() {
			if err := repo.Close(); err != nil {
				slog.Error("close sqlite", "error", err)
			}
		}, nil

	case config.DriverPostgres:
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPgContactRepository(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
