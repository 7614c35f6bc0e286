// Package audit defines the closed taxonomy of security and business events
// and the only way to construct them: one constructor per kind. Free-form
// event kinds are a programming error, not a runtime case.
package audit

import "time"

// Kind identifies an event in the closed taxonomy.
type Kind string

const (
	KindRegistrationSuccess Kind = "REGISTRATION_SUCCESS"
	KindRegistrationFailed  Kind = "REGISTRATION_FAILED"
	KindLoginSuccess        Kind = "LOGIN_SUCCESS"
	KindLoginFailed         Kind = "LOGIN_FAILED"
	KindLogout              Kind = "LOGOUT"
	KindAccountLocked       Kind = "ACCOUNT_LOCKED"
	KindPasswordChanged     Kind = "PASSWORD_CHANGED"
	KindProfileUpdated      Kind = "PROFILE_UPDATED"
	KindAssetAdded          Kind = "ASSET_ADDED"
	KindAssetUpdated        Kind = "ASSET_UPDATED"
	KindAssetDeleted        Kind = "ASSET_DELETED"
	KindSQLInjectionAttempt Kind = "SQL_INJECTION_ATTEMPT"
	KindXSSAttempt          Kind = "XSS_ATTEMPT"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindUnauthorizedAccess  Kind = "UNAUTHORIZED_ACCESS"
)

// Valid reports whether k belongs to the taxonomy.
func (k Kind) Valid() bool {
	switch k {
	case KindRegistrationSuccess, KindRegistrationFailed,
		KindLoginSuccess, KindLoginFailed, KindLogout, KindAccountLocked,
		KindPasswordChanged, KindProfileUpdated,
		KindAssetAdded, KindAssetUpdated, KindAssetDeleted,
		KindSQLInjectionAttempt, KindXSSAttempt, KindInvalidInput,
		KindUnauthorizedAccess:
		return true
	}
	return false
}

// Event is one immutable entry of the activity log.
//
// ID, RecordedAt and Seq are assigned by the log at write time; constructors
// leave them zero. Actor is nil for pre-authentication events (failed login
// with unknown email, injection attempts before sign-in). Payload carries
// event-specific, non-secret context and must never contain password
// material.
type Event struct {
	ID         string
	Actor      *string
	Kind       Kind
	Payload    map[string]any
	RecordedAt time.Time
	Seq        int64
}

func newEvent(kind Kind, actor *string, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{Actor: actor, Kind: kind, Payload: payload}
}

func actorRef(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
