// Package auditlog persists audit events in the activity_log collection.
// The log is append-only: there is deliberately no update or delete here.
package auditlog

import (
	"context"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
)

// Repository is the storage contract for the activity log.
//
// List results come back sorted by recorded_at descending, ties broken by
// insertion order (newest first). A non-positive limit means no bound.
type Repository interface {
	Append(ctx context.Context, e *audit.Event) error
	ListForActor(ctx context.Context, actor string, limit int) ([]audit.Event, error)
	ListAll(ctx context.Context, limit int) ([]audit.Event, error)
}
