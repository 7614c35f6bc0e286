package models

import "time"

// Session is the public projection of an authenticated account held by the
// session manager for the lifetime of a sign-in. It is process-local state,
// never written to the record store (only a signed marker referencing it is
// persisted for restore across restarts).
type Session struct {
	AccountID string
	Email     string
	CreatedAt time.Time
}
