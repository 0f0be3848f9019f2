package options

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/compiler"
)

// Config holds all configuration for creating an evaluator
type Config struct {
	// Log handler for the compiler and evaluator
	handler slog.Handler
	// Names an expression may refer to
	allowList *allowlist.List
	// Longest accepted expression, in bytes
	maxLength int
	// Deepest accepted expression nesting
	maxDepth int
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler for the evaluator
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithAllowList replaces the default math allow-list
func WithAllowList(list *allowlist.List) Option {
	return func(c *Config) error {
		if list == nil {
			return fmt.Errorf("allow-list cannot be nil")
		}
		c.allowList = list
		return nil
	}
}

// WithMaxLength sets the longest expression, in bytes, that will be evaluated
func WithMaxLength(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("max length must be positive, got %d", n)
		}
		c.maxLength = n
		return nil
	}
}

// WithMaxDepth sets the deepest expression nesting that will be evaluated
func WithMaxDepth(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		c.maxDepth = n
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.handler == nil {
		return fmt.Errorf("no log handler specified")
	}
	if c.allowList == nil {
		return fmt.Errorf("no allow-list specified")
	}
	if c.maxLength <= 0 || c.maxDepth <= 0 {
		return fmt.Errorf("limits must be positive (length %d, depth %d)", c.maxLength, c.maxDepth)
	}
	return nil
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetAllowList returns the configured allow-list
func (c *Config) GetAllowList() *allowlist.List {
	return c.allowList
}

// GetMaxLength returns the expression length limit
func (c *Config) GetMaxLength() int {
	return c.maxLength
}

// GetMaxDepth returns the expression depth limit
func (c *Config) GetMaxDepth() int {
	return c.maxDepth
}

// CompilerOptions translates the configuration into compiler options.
func (c *Config) CompilerOptions() []compiler.FunctionalOption {
	return []compiler.FunctionalOption{
		compiler.WithLogHandler(c.handler),
		compiler.WithAllowList(c.allowList),
		compiler.WithMaxLength(c.maxLength),
		compiler.WithMaxDepth(c.maxDepth),
	}
}
