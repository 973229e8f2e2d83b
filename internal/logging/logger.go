// Package logging builds the zap loggers used by the nth-prime command.
package logging

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = errors.New("logging: invalid log level")

// Config holds logger configuration options.
type Config struct {
	// Format is "json" or "console" ("text" is accepted as console).
	Format string
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Output receives the log lines; os.Stderr when nil.
	Output zapcore.WriteSyncer
	// Entries, when set, counts written entries by level label.
	Entries *prometheus.CounterVec
}

// DefaultConfig logs warnings and errors to stderr in console format,
// keeping stdout free for results.
func DefaultConfig() Config {
	return Config{
		Format: "console",
		Level:  "warn",
		Output: os.Stderr,
	}
}

// NewLogger creates a zap logger from cfg.
func NewLogger(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	var core zapcore.Core = zapcore.NewCore(encoder, output, level)
	if cfg.Entries != nil {
		core = &countingCore{Core: core, entries: cfg.Entries}
	}

	return zap.New(core), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// ParseLevel converts a level name to a zapcore.Level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// countingCore wraps a zapcore.Core and counts every entry it writes.
type countingCore struct {
	zapcore.Core
	entries *prometheus.CounterVec
}

//nolint:gocritic // hugeParam: interface requires value receiver
func (c *countingCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

//nolint:gocritic // hugeParam: interface requires value receiver
func (c *countingCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	c.entries.WithLabelValues(entry.Level.String()).Inc()
	return c.Core.Write(entry, fields)
}

func (c *countingCore) With(fields []zapcore.Field) zapcore.Core {
	return &countingCore{Core: c.Core.With(fields), entries: c.entries}
}
