package storage

import (
	"context"
	"errors"
	"fmt"

	"carnet/internal/app/server/config"
	"carnet/internal/domain/entry"
	"carnet/internal/domain/user"
	"carnet/internal/infrastructure/migration"
	"carnet/internal/infrastructure/storage/postgres"
	"carnet/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

var ErrNoDatabaseURI = errors.New("DATABASE_URI is not set")

// Storage is the persistence the server runs on.
type Storage interface {
	Users() user.Repository
	Entries() entry.Store
	Ping(ctx context.Context) error
	Close() error
}

// Migrate brings the configured database up to the latest schema.
func Migrate(cfg *config.Config) error {
	if cfg.DB.DatabaseURI == "" {
		return ErrNoDatabaseURI
	}
	if err := migration.NewMigration(cfg, migration.DefaultEngine).Up(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open migrates the configured database and connects to it.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	if err := Migrate(cfg); err != nil {
		return nil, err
	}

	var (
		s   Storage
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		s, err = postgres.New(ctx, cfg.DB.DatabaseURI, log)
	case config.DriverSQLite:
		s, err = sqlite.New(ctx, cfg.DB.DatabaseURI, log)
	default:
		return nil, fmt.Errorf("%w: %q", migration.ErrUnknownDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("storage opened", "driver", cfg.DB.Driver)
	return s, nil
}
