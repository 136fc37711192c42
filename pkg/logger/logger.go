package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	Service string
	Level   string
	// Pretty switches to the human readable console writer (local development only).
	Pretty bool
	Output io.Writer
}

// New builds the service logger and installs it as the zerolog context default,
// so zerolog.Ctx on a context without a logger still gets service-tagged output.
func New(opts Options) zerolog.Logger {
	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Str("service", opts.Service).
		Logger()

	zerolog.DefaultContextLogger = &l
	return l
}

func ParseLevel(lvl string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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

// FromContext returns the logger stored in ctx, annotated with the trace id of
// the active span when there is one.
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return l
	}
	traced := l.With().Str("trace_id", sc.TraceID().String()).Logger()
	return &traced
}
