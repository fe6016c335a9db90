package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-awesome-mac/internal/logging"
	"github.com/goliatone/go-awesome-mac/internal/runtimeconfig"
	"github.com/goliatone/go-awesome-mac/pkg/interfaces"
)

// OpenDB opens a Bun database for a sqlite or postgres driver.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case runtimeconfig.StorageDriverSQLite:
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case runtimeconfig.StorageDriverPostgres:
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, driver)
	}
}

// Open builds the repository selected by cfg. The returned close function
// releases the database, if any.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig, logger interfaces.Logger) (Repository, func() error, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == runtimeconfig.StorageDriverMemory {
		logger.Debug("storage.open", "driver", runtimeconfig.StorageDriverMemory)
		return NewMemoryRepository(), func() error { return nil }, nil
	}

	db, err := OpenDB(driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	repo := NewBunRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("storage: migrate %s: %w", driver, err)
	}
	logger.Debug("storage.open", "driver", driver)
	return repo, db.Close, nil
}
