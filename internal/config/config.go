// Package config loads the safecalc CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/robbyt/go-safecalc/options"
)

// EnvLogLevel overrides log.level from the config file.
const EnvLogLevel = "SAFECALC_LOG_LEVEL"

var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk CLI configuration.
type Config struct {
	Limits LimitsConfig `yaml:"limits"`
	Log    LogConfig    `yaml:"log"`
}

// LimitsConfig bounds the expressions the CLI will evaluate.
type LimitsConfig struct {
	MaxLength int `yaml:"max_length"`
	MaxDepth  int `yaml:"max_depth"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Validate checks values that applyDefaults cannot repair.
func (c *Config) Validate() error {
	if c.Limits.MaxLength < 0 || c.Limits.MaxDepth < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

// Handler returns a slog handler writing to w in the configured format.
func (c *Config) Handler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.Log.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Options converts the configuration into evaluator options.
func (c *Config) Options(handler slog.Handler) []options.Option {
	return []options.Option{
		options.WithLogHandler(handler),
		options.WithMaxLength(c.Limits.MaxLength),
		options.WithMaxDepth(c.Limits.MaxDepth),
	}
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, s)
	}
	return l, nil
}
