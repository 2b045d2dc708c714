package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"blogd/internal/app/errors"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

const driverName = "sqlite"

// Open connects to the configured SQLite file, sizes the connection pool and verifies the store is reachable
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*bun.DB, error) {
	dbCfg := cfg.Database

	if err := ensureDir(dbCfg.DSN); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToOpenDatabase, err)
	}

	sqldb, err := sql.Open(driverName, DSN(dbCfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToOpenDatabase, err)
	}

	sqldb.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(NewQueryHook(log))

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToPingDatabase, err)
	}

	return db, nil
}

// DSN appends the per-connection pragmas every pooled connection needs
func DSN(dsn string) string {
	pragmas := url.Values{}
	pragmas.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", config.BusyTimeout.Milliseconds()))
	pragmas.Add("_pragma", "journal_mode(WAL)")
	pragmas.Add("_pragma", "foreign_keys(1)")

	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	return dsn + separator + pragmas.Encode()
}

// ensureDir creates the directory holding a file based database
func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}

	if path == "" || path == ":memory:" {
		return nil
	}

	return os.MkdirAll(filepath.Dir(path), 0755)
}
