package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/compiler"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.SetHandler(DefaultHandler())
	cfg.allowList = allowlist.Default()
	cfg.maxLength = compiler.DefaultMaxLength
	cfg.maxDepth = compiler.DefaultMaxDepth
	return cfg
}

// DefaultHandler returns the default logging handler. It writes to stderr so
// that results printed on stdout stay clean.
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stderr, nil)
}

// WithDefaults applies default values to any config properties that are unset
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}
		if c.allowList == nil {
			c.allowList = allowlist.Default()
		}
		if c.maxLength == 0 {
			c.maxLength = compiler.DefaultMaxLength
		}
		if c.maxDepth == 0 {
			c.maxDepth = compiler.DefaultMaxDepth
		}
		return nil
	}
}
