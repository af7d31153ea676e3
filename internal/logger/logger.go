// Package logger configures slog for the CLI. All log output goes to
// stderr; stdout is reserved for the JSON the user asked for. The default
// level is warn so a successful run writes nothing but its result.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/golang-cz/devslog"
	"github.com/pkg/errors"
)

type Level string
type Provider string
type contextKeyT string

var contextKey = contextKeyT("github.com/EiSiMo/agentic-letters-skill/internal/logger")

const (
	INFO  Level = "info"
	ERROR Level = "error"
	WARN  Level = "warn"
	DEBUG Level = "debug"

	ProviderDevSlog Provider = "dev"      // colored output for humans
	ProviderStdJson Provider = "std_json" // JSON lines for machines
	ProviderNoop    Provider = "noop"     // for unit tests
)

type Config struct {
	Provider Provider `envconfig:"LOG_PROVIDER" default:"std_json"`
	Level    Level    `envconfig:"LOG_LEVEL" default:"warn"`
}

// New creates a slog.Logger for the configured provider, writing to stderr.
func New(c Config) *slog.Logger {
	level := convertLevel(c.Level)
	switch c.Provider {
	case ProviderDevSlog:
		return newDevSlog(os.Stderr, level)
	case ProviderNoop:
		return NewNoop()
	case ProviderStdJson:
		fallthrough
	default:
		return newStdJson(os.Stderr, level)
	}
}

// InitDefault creates a logger from Config and sets it as the slog default.
func InitDefault(c Config) {
	slog.SetDefault(New(c))
}

// NewContext packs a logger into the context.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey, l)
}

// FromContext extracts the logger from the context, falling back to the
// default when none was packed.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey).(*slog.Logger); ok {
		return l
	}

	return slog.Default()
}

// WithErr returns the default logger with the error attached, including a
// stack trace when the error carries one.
func WithErr(err error) *slog.Logger {
	return appendErr(slog.Default(), err)
}

// NewNoop returns a logger that discards everything.
func NewNoop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDevSlog(w io.Writer, level slog.Level) *slog.Logger {
	opts := &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     level,
		},
		NewLineAfterLog:   true,
		SortKeys:          true,
		TimeFormat:        "[15:04:05]",
		StringerFormatter: true,
	}

	return slog.New(devslog.NewHandler(w, opts))
}

func newStdJson(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func appendErr(l *slog.Logger, err error) *slog.Logger {
	var stackTracer interface {
		StackTrace() errors.StackTrace
	}

	if errors.As(err, &stackTracer) {
		l = l.With("stack", stackTracer.StackTrace())
	}

	return l.With("error", err.Error())
}

func convertLevel(level Level) slog.Level {
	switch level {
	case DEBUG:
		return slog.LevelDebug
	case INFO:
		return slog.LevelInfo
	case ERROR:
		return slog.LevelError
	case WARN:
		fallthrough
	default:
		return slog.LevelWarn
	}
}
