// Package logging defines the structured-logging interface the services
// depend on, plus a zerolog-backed implementation and a no-op variant.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// key–value pairs:
//
//	log.Info(ctx, "store opened", "path", path)
type Logger interface {
	// Info logs routine events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
