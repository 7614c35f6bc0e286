// Package sanitize classifies raw user input for SQL-injection and
// script-injection patterns and strips markup before values reach storage.
// A positive classification aborts the calling operation with a generic
// invalid-input failure; which pattern matched is recorded only in the
// audit payload, never shown to the caller.
package sanitize

import (
	"regexp"
	"strings"
)

// Threat classifies suspicious input.
type Threat int

const (
	ThreatNone Threat = iota
	ThreatSQLInjection
	ThreatXSS
)

var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|EXECUTE)\b`),
	regexp.MustCompile(`(?i)(--|;|/\*|\*/|xp_|sp_)`),
	regexp.MustCompile(`(?i)\b(OR|AND)\b\s*\d+\s*=\s*\d+`),
}

var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<(iframe|object|embed)`),
}

var (
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsScheme      = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)on\w+=`)
)

// Inspect classifies s. XSS patterns are checked first: markup that also
// happens to contain SQL keywords is still script injection.
func Inspect(s string) Threat {
	for _, p := range xssPatterns {
		if p.MatchString(s) {
			return ThreatXSS
		}
	}
	for _, p := range sqlPatterns {
		if p.MatchString(s) {
			return ThreatSQLInjection
		}
	}
	return ThreatNone
}

// Clean strips angle brackets, javascript: URIs and inline event handlers,
// then trims surrounding whitespace. It is a second line of defense applied
// after Inspect, not a substitute for it.
func Clean(s string) string {
	s = angleBrackets.ReplaceAllString(s, "")
	s = jsScheme.ReplaceAllString(s, "")
	s = eventHandler.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
