package password

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
)

func TestValidate_AcceptsCompliantPassword(t *testing.T) {
	assert.NoError(t, Validate("Abcd123!"))
}

func TestValidate_ReportsFirstViolatedRule(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		rule string
	}{
		{"too short", "Ab1!", "must be at least 8 characters long"},
		{"no uppercase", "abcd123!", "must contain an uppercase letter"},
		{"no lowercase", "ABCD123!", "must contain a lowercase letter"},
		{"no digit", "Abcdefg!", "must contain a digit"},
		{"no symbol", "Abcd1234", "must contain a special character"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.pw)
			require.Error(t, err)

			var pv *common.PolicyViolationError
			require.True(t, errors.As(err, &pv))
			assert.Equal(t, tc.rule, pv.Rule)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, StrengthWeak, Classify("short"))
	assert.Equal(t, StrengthWeak, Classify("abcd1234"))
	assert.Equal(t, StrengthMedium, Classify("Abcd123!"))
	assert.Equal(t, StrengthStrong, Classify("Abcd123!Efgh#"))
}
