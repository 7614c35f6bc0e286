package auditlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/dbx"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append writes one event. The event id and recorded_at are assigned here,
// at write time, unless the caller already set them (tests do, to control
// ordering). On success e.ID, e.RecordedAt and e.Seq are populated.
func (r *SQLiteRepository) Append(ctx context.Context, e *audit.Event) error {
	if !e.Kind.Valid() {
		// Closed taxonomy: an unknown kind is a bug in the caller.
		panic(fmt.Sprintf("auditlog: unknown event kind %q", e.Kind))
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("failed to encode audit payload: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (id, actor, kind, payload, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, encodeActor(e.Actor), string(e.Kind), string(payload), timex.Format(e.RecordedAt))
	if err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	if e.Seq, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to get audit event seq: %w", err)
	}
	return nil
}

// ListForActor returns the actor's events, newest first.
func (r *SQLiteRepository) ListForActor(ctx context.Context, actor string, limit int) ([]audit.Event, error) {
	return r.list(ctx,
		`SELECT seq, id, actor, kind, payload, recorded_at FROM activity_log
		 WHERE actor = ? ORDER BY recorded_at DESC, seq DESC LIMIT ?`, actor, sqlLimit(limit))
}

// ListAll returns events across all actors, newest first.
func (r *SQLiteRepository) ListAll(ctx context.Context, limit int) ([]audit.Event, error) {
	return r.list(ctx,
		`SELECT seq, id, actor, kind, payload, recorded_at FROM activity_log
		 ORDER BY recorded_at DESC, seq DESC LIMIT ?`, sqlLimit(limit))
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]audit.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select audit events: %w", err)
	}
	defer rows.Close()

	var result []audit.Event
	for rows.Next() {
		var e audit.Event
		var actor sql.NullString
		var kind, payload, recordedAt string

		if err := rows.Scan(&e.Seq, &e.ID, &actor, &kind, &payload, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if actor.Valid {
			e.Actor = &actor.String
		}
		e.Kind = audit.Kind(kind)
		if err := json.Unmarshal([]byte(payload), &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode audit payload: %w", err)
		}
		if e.RecordedAt, err = timex.Parse(recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse audit recorded_at: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit events: %w", err)
	}
	return result, nil
}

func encodeActor(actor *string) any {
	if actor == nil {
		return nil
	}
	return *actor
}

// sqlLimit maps "no bound" to SQLite's unlimited LIMIT value.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
