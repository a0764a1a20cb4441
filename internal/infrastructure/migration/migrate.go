package migration

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"carnet/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var migrations embed.FS

var ErrUnknownDriver = errors.New("unknown database driver")

// Migrator is the part of migrate.Migrate the runner needs.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests swap it to stay off the database.
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// Source returns the embedded migration files for driver.
func Source(driver string) (source.Driver, error) {
	switch driver {
	case config.DriverPostgres:
		return iofs.New(migrations, "sql/postgres")
	case config.DriverSQLite:
		return iofs.New(migrations, "sql/sqlite")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// DatabaseURL turns the configured URI into the form golang-migrate expects.
func DatabaseURL(driver, uri string) string {
	if driver == config.DriverSQLite && !strings.HasPrefix(uri, "sqlite3://") {
		return "sqlite3://" + uri
	}
	return uri
}

func (mg *Migration) Up() (err error) {
	src, err := Source(mg.cfg.DB.Driver)
	if err != nil {
		return err
	}

	m, err := mg.engine(src, DatabaseURL(mg.cfg.DB.Driver, mg.cfg.DB.DatabaseURI))
	if err != nil {
		_ = src.Close()
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
