// Package common contains shared sentinel errors and small utilities used
// across Investify components. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Store-level errors.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Credential policy errors.
	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid login credentials")
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")

	// Input and access errors.
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// AccountLockedError reports a refused authentication attempt against a
// locked account, carrying the time left until the lock expires.
type AccountLockedError struct {
	Remaining time.Duration
}

func (e *AccountLockedError) Error() string {
	minutes := int(e.Remaining.Minutes())
	if e.Remaining > time.Duration(minutes)*time.Minute {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("account locked, try again in %d minutes", minutes)
}

// PolicyViolationError reports the first password-policy rule the candidate
// password failed to satisfy.
type PolicyViolationError struct {
	Rule string
}

func (e *PolicyViolationError) Error() string {
	return "password policy violation: " + e.Rule
}
