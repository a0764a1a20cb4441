package postgres

import (
	"context"
	"fmt"

	"carnet/internal/domain/entry"
	"carnet/internal/domain/user"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
)

type Storage struct {
	pool    *pgxpool.Pool
	users   *UserRepository
	entries *EntryRepository
}

// New connects to uri and checks the connection. Schema is managed by the
// migration package.
func New(ctx context.Context, uri string, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Storage{
		pool:    pool,
		users:   NewUserRepository(pool, log),
		entries: NewEntryRepository(pool, log),
	}, nil
}

func (s *Storage) Users() user.Repository {
	return s.users
}

func (s *Storage) Entries() entry.Store {
	return s.entries
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}
