package logging

import "context"

// NopLogger discards everything. Useful as a default and in tests.
type NopLogger struct{}

func (NopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (NopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (NopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (NopLogger) With(args ...any) Logger                            { return NopLogger{} }
