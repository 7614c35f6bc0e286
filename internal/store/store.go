// Package store opens the embedded SQLite record store and applies its
// schema migrations. The store is a process-wide singleton: Open is
// idempotent, and however many goroutines race on the first call, exactly
// one migration pass runs and all callers share its outcome.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/store/migrations"
)

var (
	openOnce  sync.Once
	sharedDB  *sql.DB
	sharedErr error
)

// Open returns the process-wide store handle, initializing it on first use.
// Subsequent calls return the same handle regardless of dsn. Initialization
// failure is sticky and surfaces as common.ErrStoreUnavailable.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	openOnce.Do(func() {
		sharedDB, sharedErr = New(ctx, dsn)
	})
	return sharedDB, sharedErr
}

// New opens a SQLite database at dsn, limits it to a single connection
// (SQLite allows one writer; this also serializes transactions, so every
// committed write is serializable), and applies migrations. Unlike Open it
// is not a singleton; tests use it for isolated databases.
func New(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
