package cli

import (
	"errors"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
)

// userMessage maps a domain error to the line shown to the user. Lock and
// policy errors carry their own wording; anything unrecognized collapses to
// a generic message so internals never leak to the prompt.
func userMessage(err error) string {
	var locked *common.AccountLockedError
	if errors.As(err, &locked) {
		return locked.Error()
	}
	var policy *common.PolicyViolationError
	if errors.As(err, &policy) {
		return policy.Rule
	}

	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return common.ErrEmailTaken.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrCurrentPasswordIncorrect):
		return common.ErrCurrentPasswordIncorrect.Error()
	case errors.Is(err, common.ErrInvalidInput):
		return "invalid input"
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrNotFound):
		return "position not found"
	case errors.Is(err, common.ErrStoreUnavailable):
		return "local storage is unavailable"
	}
	return "something went wrong, please try again"
}
