// Package logger provides structured logging for urikit.
// It supports multiple output formats (JSON, text) and log levels, on top of zerolog.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Level represents a log level.
type Level int

const (
	// DebugLevel is for detailed debugging information.
	DebugLevel Level = iota
	// InfoLevel is for general operational information.
	InfoLevel
	// WarnLevel is for warning messages.
	WarnLevel
	// ErrorLevel is for error messages.
	ErrorLevel
)

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}

// Fields represents structured log fields.
type Fields map[string]interface{}

// Logger is the interface for structured logging.
type Logger interface {
	// WithField adds a field to the logger and returns a new logger.
	WithField(key string, value interface{}) Logger

	// WithFields adds multiple fields to the logger and returns a new logger.
	WithFields(fields Fields) Logger

	// WithContext extracts correlation ID from context and returns a new logger.
	WithContext(ctx context.Context) Logger

	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format: "json" or "text".
	Format string

	// Output is the writer to log to. Defaults to os.Stderr.
	Output io.Writer
}

// New creates a new Logger with the given configuration.
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	var w io.Writer = cfg.Output
	if !strings.EqualFold(cfg.Format, "json") {
		w = zerolog.ConsoleWriter{
			Out:        cfg.Output,
			NoColor:    true,
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
			FormatLevel: func(i interface{}) string {
				return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
			},
		}
	}

	zl := zerolog.New(w).Level(cfg.Level.zerolog()).With().Timestamp().Logger()
	return &zlogger{zl: zl}
}

// NewDefault creates a new Logger with sensible defaults.
func NewDefault() Logger {
	return New(Config{
		Level:  InfoLevel,
		Format: "text",
		Output: os.Stderr,
	})
}

// contextKey is the type for context keys.
type contextKey string

const correlationIDKey contextKey = "correlation_id"

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID extracts the correlation ID from the context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// zlogger is immutable: every With* call derives a new zerolog.Logger.
type zlogger struct {
	zl zerolog.Logger
}

func (l *zlogger) WithField(key string, value interface{}) Logger {
	return &zlogger{zl: l.zl.With().Interface(key, value).Logger()}
}

func (l *zlogger) WithFields(fields Fields) Logger {
	return &zlogger{zl: l.zl.With().Fields(map[string]interface{}(fields)).Logger()}
}

func (l *zlogger) WithContext(ctx context.Context) Logger {
	if id := CorrelationID(ctx); id != "" {
		return l.WithField("correlation_id", id)
	}
	return l
}

func (l *zlogger) Debug(msg string) { l.zl.Debug().Msg(msg) }
func (l *zlogger) Info(msg string)  { l.zl.Info().Msg(msg) }
func (l *zlogger) Warn(msg string)  { l.zl.Warn().Msg(msg) }
func (l *zlogger) Error(msg string) { l.zl.Error().Msg(msg) }

func (l *zlogger) Debugf(format string, args ...interface{}) { l.zl.Debug().Msgf(format, args...) }
func (l *zlogger) Infof(format string, args ...interface{})  { l.zl.Info().Msgf(format, args...) }
func (l *zlogger) Warnf(format string, args ...interface{})  { l.zl.Warn().Msgf(format, args...) }
func (l *zlogger) Errorf(format string, args ...interface{}) { l.zl.Error().Msgf(format, args...) }

// NopLogger is a logger that discards all output.
// Useful for testing.
type NopLogger struct{}

func (NopLogger) WithField(key string, value interface{}) Logger { return NopLogger{} }
func (NopLogger) WithFields(fields Fields) Logger                { return NopLogger{} }
func (NopLogger) WithContext(ctx context.Context) Logger         { return NopLogger{} }
func (NopLogger) Debug(msg string)                               {}
func (NopLogger) Debugf(format string, args ...interface{})      {}
func (NopLogger) Info(msg string)                                {}
func (NopLogger) Infof(format string, args ...interface{})       {}
func (NopLogger) Warn(msg string)                                {}
func (NopLogger) Warnf(format string, args ...interface{})       {}
func (NopLogger) Error(msg string)                               {}
func (NopLogger) Errorf(format string, args ...interface{})      {}
