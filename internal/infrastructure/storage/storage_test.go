package storage

import (
	"context"
	"path/filepath"
	"testing"

	"carnet/internal/app/server/config"
	"carnet/internal/infrastructure/migration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		Driver:      config.DriverSQLite,
		DatabaseURI: filepath.Join(t.TempDir(), "carnet.db"),
	}}

	store, err := Open(context.Background(), cfg, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.NoError(t, store.Ping(context.Background()))
	assert.NotNil(t, store.Users())
	assert.NotNil(t, store.Entries())
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want error
	}{
		{
			name: "missing uri",
			db:   config.DB{Driver: config.DriverPostgres},
			want: ErrNoDatabaseURI,
		},
		{
			name: "unknown driver",
			db:   config.DB{Driver: "mongo", DatabaseURI: "mongodb://localhost"},
			want: migration.ErrUnknownDriver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), &config.Config{DB: tt.db}, slog.Default())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
