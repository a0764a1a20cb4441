package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"carnet/internal/domain/entry"
	"carnet/internal/domain/user"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"
)

type Storage struct {
	db      *sql.DB
	users   *UserRepository
	entries *EntryRepository
}

// New opens the database file at path with foreign keys on. Schema is
// managed by the migration package.
func New(ctx context.Context, path string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one writer at a time keeps "database is locked" away
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{
		db:      db,
		users:   NewUserRepository(db, log),
		entries: NewEntryRepository(db, log),
	}, nil
}

func dsn(path string) string {
	path = strings.TrimPrefix(path, "sqlite3://")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

func (s *Storage) Users() user.Repository {
	return s.users
}

func (s *Storage) Entries() entry.Store {
	return s.entries
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}
