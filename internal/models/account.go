// Package models defines the persisted entities of the Investify core:
// accounts, portfolio positions, and the process-local session projection.
package models

import "time"

// Account is a registered user as stored in the accounts collection.
// CredentialHash holds a salted bcrypt digest; the plaintext password is
// never stored or logged. FailedAttempts and LockExpiry are owned by the
// credential policy engine and must not be mutated elsewhere.
type Account struct {
	ID             string
	Email          string
	CredentialHash string
	FailedAttempts int
	LockExpiry     *time.Time
	CreatedAt      time.Time
}

// Locked reports whether the account is locked as of now. A lock whose
// expiry has passed counts as not locked; the engine clears it lazily on
// the next authentication attempt.
func (a *Account) Locked(now time.Time) bool {
	return a.LockExpiry != nil && a.LockExpiry.After(now)
}

// Public returns the account projection safe to hand to the presentation
// layer. It never includes the credential hash or lockout state.
func (a *Account) Public() Session {
	return Session{
		AccountID: a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
