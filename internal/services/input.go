package services

import (
	"context"

	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/audit"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/common"
	"github.com/MuhammadSaadHassan20/investify-secure-portfolio/internal/sanitize"
)

// inspectField runs the threat classifier over one raw input value. On
// detection it records the matching audit event (carrying the raw value for
// forensics) and returns a generic invalid-input error with ok=false. The
// caller learns nothing about which pattern matched.
func inspectField(ctx context.Context, rec Recorder, actor, field, value string) (bool, error) {
	switch sanitize.Inspect(value) {
	case sanitize.ThreatSQLInjection:
		rec.Record(ctx, audit.SQLInjectionAttempt(actor, field, value))
		return false, common.ErrInvalidInput
	case sanitize.ThreatXSS:
		rec.Record(ctx, audit.XSSAttempt(actor, field, value))
		return false, common.ErrInvalidInput
	}
	return true, nil
}

func cleanInput(s string) string {
	return sanitize.Clean(s)
}
