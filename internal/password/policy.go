// Package password implements the password policy applied at registration
// and password change, plus the strength classification shown by the UI.
// Only policy validity gates acceptance; strength is feedback.
package password

import (
	"strings"
	"unicode"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
)

// SpecialChars is the accepted symbol set. At least one of these is required.
const SpecialChars = `!@#$%^&*()_+-=[]{};':",.<>/?\|`

// MinLength is the minimum accepted password length.
const MinLength = 8

// Strength is the UI feedback classification.
type Strength string

const (
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

// Validate checks pw against the minimum policy. It returns a
// *common.PolicyViolationError naming the first violated rule, or nil.
func Validate(pw string) error {
	switch {
	case len(pw) < MinLength:
		return &common.PolicyViolationError{Rule: "must be at least 8 characters long"}
	case !containsFunc(pw, unicode.IsUpper):
		return &common.PolicyViolationError{Rule: "must contain an uppercase letter"}
	case !containsFunc(pw, unicode.IsLower):
		return &common.PolicyViolationError{Rule: "must contain a lowercase letter"}
	case !containsFunc(pw, unicode.IsDigit):
		return &common.PolicyViolationError{Rule: "must contain a digit"}
	case !strings.ContainsAny(pw, SpecialChars):
		return &common.PolicyViolationError{Rule: "must contain a special character"}
	}
	return nil
}

// Classify grades a password for UI feedback. Anything failing the minimum
// policy is weak; passing it at 12+ characters with two or more symbols is
// strong; everything else passing is medium.
func Classify(pw string) Strength {
	if Validate(pw) != nil {
		return StrengthWeak
	}
	symbols := 0
	for _, r := range pw {
		if strings.ContainsRune(SpecialChars, r) {
			symbols++
		}
	}
	if len(pw) >= 12 && symbols >= 2 {
		return StrengthStrong
	}
	return StrengthMedium
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
