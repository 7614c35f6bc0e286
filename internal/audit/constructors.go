package audit

import "time"

// RegistrationSuccess records a completed sign-up. Actor is nil: the new
// account is not signed in yet, so the event is pre-authentication.
func RegistrationSuccess(email string) Event {
	return newEvent(KindRegistrationSuccess, nil, map[string]any{"email": email})
}

// RegistrationFailed records a rejected sign-up attempt.
func RegistrationFailed(email, reason string) Event {
	return newEvent(KindRegistrationFailed, nil, map[string]any{
		"email":  email,
		"reason": reason,
	})
}

// LoginSuccess records a successful authentication.
func LoginSuccess(accountID, email string) Event {
	return newEvent(KindLoginSuccess, actorRef(accountID), map[string]any{"email": email})
}

// LoginFailed records a failed authentication attempt. Actor is nil because
// the caller never proved an identity; attempts is the failure counter after
// this attempt, zero when the email is unknown or the account is locked.
func LoginFailed(email string, attempts int) Event {
	return newEvent(KindLoginFailed, nil, map[string]any{
		"email":    email,
		"attempts": attempts,
	})
}

// Logout records an explicit sign-out.
func Logout(accountID, email string) Event {
	return newEvent(KindLogout, actorRef(accountID), map[string]any{"email": email})
}

// AccountLocked records the failed attempt that tripped the lockout
// threshold, with the moment the lock will expire.
func AccountLocked(email string, attempts int, until time.Time) Event {
	return newEvent(KindAccountLocked, nil, map[string]any{
		"email":        email,
		"attempts":     attempts,
		"locked_until": until.Format(time.RFC3339),
	})
}

// PasswordChanged records a completed password change.
func PasswordChanged(accountID, email string) Event {
	return newEvent(KindPasswordChanged, actorRef(accountID), map[string]any{
		"email":   email,
		"success": true,
	})
}

// PasswordChangeRejected records a refused password change, e.g. a wrong
// current password. Same kind as PasswordChanged, distinguished by payload.
func PasswordChangeRejected(accountID, email, reason string) Event {
	return newEvent(KindPasswordChanged, actorRef(accountID), map[string]any{
		"email":   email,
		"success": false,
		"reason":  reason,
	})
}

// ProfileUpdated records a profile mutation outside the credential path.
func ProfileUpdated(accountID string, fields []string) Event {
	return newEvent(KindProfileUpdated, actorRef(accountID), map[string]any{"fields": fields})
}

// AssetAdded records a new portfolio position.
func AssetAdded(accountID, positionID, symbol, assetClass, quantity string) Event {
	return newEvent(KindAssetAdded, actorRef(accountID), map[string]any{
		"position_id": positionID,
		"symbol":      symbol,
		"asset_class": assetClass,
		"quantity":    quantity,
	})
}

// AssetUpdated records a mutation of an existing position.
func AssetUpdated(accountID, positionID, symbol string) Event {
	return newEvent(KindAssetUpdated, actorRef(accountID), map[string]any{
		"position_id": positionID,
		"symbol":      symbol,
	})
}

// AssetDeleted records removal of a position.
func AssetDeleted(accountID, positionID, symbol string) Event {
	return newEvent(KindAssetDeleted, actorRef(accountID), map[string]any{
		"position_id": positionID,
		"symbol":      symbol,
	})
}

// SQLInjectionAttempt records a rejected input classified as SQL-injection
// like. The raw value goes to the payload only; the caller sees a generic
// invalid-input failure.
func SQLInjectionAttempt(accountID, field, value string) Event {
	return newEvent(KindSQLInjectionAttempt, actorRef(accountID), map[string]any{
		"field": field,
		"value": value,
	})
}

// XSSAttempt records a rejected input classified as script-injection like.
func XSSAttempt(accountID, field, value string) Event {
	return newEvent(KindXSSAttempt, actorRef(accountID), map[string]any{
		"field": field,
		"value": value,
	})
}

// InvalidInput records a malformed or out-of-bounds input value.
func InvalidInput(accountID, field, value string) Event {
	return newEvent(KindInvalidInput, actorRef(accountID), map[string]any{
		"field": field,
		"value": value,
	})
}

// UnauthorizedAccess records an operation attempted against a resource the
// caller does not own, or a tampered session marker.
func UnauthorizedAccess(accountID, detail string) Event {
	return newEvent(KindUnauthorizedAccess, actorRef(accountID), map[string]any{
		"detail": detail,
	})
}
