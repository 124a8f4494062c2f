package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
)

var (
	ErrDriverUnknown = errors.New("storage: unknown database driver")
	ErrDSNRequired   = errors.New("storage: dsn is required")
)

// Config describes how to open the bun database backing the stores.
type Config struct {
	Driver       string
	DSN          string
	Debug        bool
	MaxOpenConns int
}

// Open creates a bun database for the configured driver. SQLite connections
// are capped to a single open connection so transactions and reads share it.
func Open(cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	var db *bun.DB
	switch NormalizeDriver(cfg.Driver) {
	case "sqlite3":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
	case "postgres":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnknown, cfg.Driver)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db, nil
}

// NormalizeDriver maps driver aliases onto the names understood by Open.
func NormalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return "sqlite3"
	case "postgres", "postgresql", "pg":
		return "postgres"
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}
