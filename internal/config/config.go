// Package config loads nth-prime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/primesieve/internal/logging"
	"github.com/katalvlaran/primesieve/sieve"
)

// Prefix is the environment variable prefix, e.g. NTHPRIME_BUFFER_MODE.
const Prefix = "NTHPRIME"

// DefaultEnvFile is read when present and no explicit file is given.
const DefaultEnvFile = ".env"

// Config validation errors
var (
	ErrInvalidBufferMode     = errors.New("config: buffer_mode must be 'bitset' or 'bytes'")
	ErrInvalidMaxBufferBytes = errors.New("config: max_buffer_bytes must be positive")
	ErrInvalidMaxWidenings   = errors.New("config: max_widenings must be non-negative")
	ErrInvalidJobs           = errors.New("config: jobs must be positive")
	ErrInvalidLogFormat      = errors.New("config: log_format must be 'json' or 'console'")
	ErrInvalidLogLevel       = errors.New("config: log_level must be debug, info, warn, or error")
)

// Config holds every tunable of the nth-prime command.
// split_words derives NTHPRIME_MAX_BUFFER_BYTES etc. without an unprefixed fallback.
type Config struct {
	Strict         bool   `split_words:"true" default:"false"`
	BufferMode     string `split_words:"true" default:"bitset"`
	MaxBufferBytes int64  `split_words:"true" default:"1073741824"` // 1GiB
	MaxWidenings   int    `split_words:"true" default:"8"`
	Jobs           int    `split_words:"true" default:"1"`
	LogFormat      string `split_words:"true" default:"console"`
	LogLevel       string `split_words:"true" default:"warn"`
	MetricsFile    string `split_words:"true"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Strict:         false,
		BufferMode:     "bitset",
		MaxBufferBytes: sieve.DefaultMaxBufferBytes,
		MaxWidenings:   sieve.DefaultMaxWidenings,
		Jobs:           1,
		LogFormat:      "console",
		LogLevel:       "warn",
	}
}

// Load reads envFile into the process environment (without overriding
// variables already set), then decodes NTHPRIME_* variables.
// An empty envFile means DefaultEnvFile, which may be absent.
func Load(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: reading %s: %w", DefaultEnvFile, err)
		}
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func Validate(cfg *Config) error {
	if _, err := sieve.ParseBufferMode(cfg.BufferMode); err != nil {
		return ErrInvalidBufferMode
	}
	if cfg.MaxBufferBytes <= 0 {
		return ErrInvalidMaxBufferBytes
	}
	if cfg.MaxWidenings < 0 {
		return ErrInvalidMaxWidenings
	}
	if cfg.Jobs <= 0 {
		return ErrInvalidJobs
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return ErrInvalidLogFormat
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil || cfg.LogLevel == "" {
		return ErrInvalidLogLevel
	}
	return nil
}

// SieveOptions converts a validated Config into sieve options.
func (c Config) SieveOptions() ([]sieve.Option, error) {
	mode, err := sieve.ParseBufferMode(c.BufferMode)
	if err != nil {
		return nil, ErrInvalidBufferMode
	}
	opts := []sieve.Option{
		sieve.WithBufferMode(mode),
		sieve.WithMaxBufferBytes(c.MaxBufferBytes),
		sieve.WithMaxWidenings(c.MaxWidenings),
	}
	if c.Strict {
		opts = append(opts, sieve.WithStrict())
	}
	return opts, nil
}

// LoggingConfig returns the logger settings from c.
func (c Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Format = c.LogFormat
	lc.Level = c.LogLevel
	return lc
}
