package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	l zerolog.Logger
}

// Options controls logger construction.
type Options struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Defaults to "info" when empty or unrecognised.
	Level string
	// Pretty enables human-friendly console output instead of JSON.
	Pretty bool
	// Output is the writer logs are sent to. Defaults to os.Stderr.
	Output io.Writer
}

// NewZerologLogger builds a Logger backed by zerolog with the given options.
func NewZerologLogger(opts Options) *ZerologLogger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(parseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	return &ZerologLogger{l: l}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Debug(), msg, args)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Info(), msg, args)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Warn(), msg, args)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	z.emit(z.l.Error(), msg, args)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for k, v := range pairs(args) {
		c = c.Interface(k, v)
	}
	return &ZerologLogger{l: c.Logger()}
}

// emit attaches key–value pairs to the event and sends it.
func (z *ZerologLogger) emit(e *zerolog.Event, msg string, args []any) {
	for k, v := range pairs(args) {
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// pairs interprets a variadic key–value list. A trailing key without a value
// or a non-string key is recorded under "!BADKEY", mirroring slog behavior.
func pairs(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			m["!BADKEY"] = args[i]
			continue
		}
		if i+1 >= len(args) {
			m["!BADKEY"] = key
			continue
		}
		m[key] = args[i+1]
	}
	return m
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
