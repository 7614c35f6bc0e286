package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
)

// setupDB creates an in-memory database with the full record store schema.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE accounts (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  credential_hash TEXT NOT NULL,
  failed_attempts INTEGER NOT NULL DEFAULT 0,
  lock_expiry TEXT NULL,
  created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX idx_accounts_email ON accounts (email);

CREATE TABLE activity_log (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  actor TEXT NULL,
  kind TEXT NOT NULL,
  payload TEXT NOT NULL,
  recorded_at TEXT NOT NULL
);
CREATE INDEX idx_activity_log_actor ON activity_log (actor);

CREATE TABLE portfolio_positions (
  id TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  symbol TEXT NOT NULL,
  asset_class TEXT NOT NULL,
  quantity TEXT NOT NULL,
  cost_basis_price TEXT NOT NULL,
  manual_current_price TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX idx_portfolio_positions_owner ON portfolio_positions (owner);

CREATE TABLE metadata (
  key TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

// countEvents returns how many logged events carry the given kind.
func countEvents(t *testing.T, log *AuditService, kind audit.Kind) int {
	t.Helper()
	events, err := log.ListAll(context.Background(), 0)
	require.NoError(t, err)
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
