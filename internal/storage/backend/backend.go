// Package backend picks the storage implementation named in config.
package backend

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/students-api/internal/config"
	"github.com/aanand-mishra/students-api/internal/storage"
	"github.com/aanand-mishra/students-api/internal/storage/postgres"
	"github.com/aanand-mishra/students-api/internal/storage/sqlite"
	"github.com/aanand-mishra/students-api/internal/storage/sqlstore"
)

// New opens the configured database and bootstraps its table.
func New(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	var (
		store *sqlstore.Store
		err   error
	)

	switch cfg.Database.Driver {
	case sqlite.DriverName:
		store, err = sqlite.New(ctx, cfg)
	case postgres.DriverPQ, postgres.DriverPGX:
		store, err = postgres.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("backend.New: unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
