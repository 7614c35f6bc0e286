// Package services contains the application services of the Investify core:
// the credential policy engine, the session manager, the audit log, the
// portfolio service and valuation. They compose repositories over the
// record store; all mutations run inside dbx.WithTx transactions.
package services

import (
	"context"
	"database/sql"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/logging"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/repositories/auditlog"
)

// Recorder appends audit events. Implementations must never fail the
// caller: recording accompanies a primary operation and must not block it.
type Recorder interface {
	Record(ctx context.Context, e audit.Event)
}

// AuditService is the append-only activity log. Write failures are
// swallowed here and surfaced only through the logger, per the error
// propagation policy.
type AuditService struct {
	db  *sql.DB
	log logging.Logger
}

// NewAuditService constructs an AuditService over the given store handle.
func NewAuditService(db *sql.DB, log logging.Logger) *AuditService {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &AuditService{db: db, log: log}
}

// Record appends one event in its own transaction. The caller's operation
// proceeds whether or not the append succeeds.
func (s *AuditService) Record(ctx context.Context, e audit.Event) {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return auditlog.NewSQLiteRepository(tx).Append(ctx, &e)
	})
	if err != nil {
		s.log.Error(ctx, "failed to record audit event", "kind", string(e.Kind), "error", err)
	}
}

// ListForActor returns the actor's events, newest first, bounded to limit.
func (s *AuditService) ListForActor(ctx context.Context, actor string, limit int) ([]audit.Event, error) {
	return auditlog.NewSQLiteRepository(s.db).ListForActor(ctx, actor, limit)
}

// ListAll returns events across all actors, newest first, bounded to limit.
func (s *AuditService) ListAll(ctx context.Context, limit int) ([]audit.Event, error) {
	return auditlog.NewSQLiteRepository(s.db).ListAll(ctx, limit)
}
