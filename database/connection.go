package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a database/sql handle together with the driver it was opened with.
// The loader supports sqlite3 (the default fixture artifact) and pgx.
type DB struct {
	*sql.DB
	Driver string
}

// NewConnection opens and pings a database. For sqlite3 the URL is a file
// path; for pgx it is a postgres connection string.
func NewConnection(ctx context.Context, driver, url string) (*DB, error) {
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Duplicates and orphans are intentional data, but the FK declarations
	// should still exist for the pipeline under test to discover.
	if driver == "sqlite3" {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure sqlite: %w", err)
		}
	}

	return &DB{DB: db, Driver: driver}, nil
}
