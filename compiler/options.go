package compiler

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/internal/helpers"
)

const (
	// DefaultMaxLength bounds the trimmed expression size in bytes.
	DefaultMaxLength = 4096
	// DefaultMaxDepth bounds the nesting depth of the parsed expression.
	DefaultMaxDepth = 256
)

// FunctionalOption is a function that configures a Compiler instance
type FunctionalOption func(*Compiler) error

// WithAllowList replaces the default math allow-list.
func WithAllowList(list *allowlist.List) FunctionalOption {
	return func(c *Compiler) error {
		if list == nil {
			return ErrNilAllowList
		}
		c.allowList = list
		return nil
	}
}

// WithMaxLength sets the longest expression, in bytes, the compiler accepts.
func WithMaxLength(n int) FunctionalOption {
	return func(c *Compiler) error {
		if n <= 0 {
			return fmt.Errorf("%w: max length %d", ErrInvalidLimit, n)
		}
		c.maxLength = n
		return nil
	}
}

// WithMaxDepth sets the deepest expression nesting the compiler accepts.
func WithMaxDepth(n int) FunctionalOption {
	return func(c *Compiler) error {
		if n <= 0 {
			return fmt.Errorf("%w: max depth %d", ErrInvalidLimit, n)
		}
		c.maxDepth = n
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the compiler.
// This is the preferred option for logging configuration as it provides
// more flexibility through the slog.Handler interface.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(c *Compiler) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		c.logHandler = handler
		// Clear logger if handler is explicitly set
		c.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the compiler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(c *Compiler) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		// Clear handler if logger is explicitly set
		c.logHandler = nil
		return nil
	}
}

// setupLogger configures the logger and handler based on the current state.
func (c *Compiler) setupLogger() {
	if c.logger != nil {
		c.logHandler = c.logger.Handler()
	} else {
		c.logHandler, c.logger = helpers.SetupLogger(c.logHandler, "safecalc", "Compiler")
	}
}

// validate checks if the compiler configuration is valid
func (c *Compiler) validate() error {
	if c.logHandler == nil && c.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	if c.allowList == nil {
		return ErrNilAllowList
	}
	return nil
}

// applyDefaults sets the default values for a compiler
func (c *Compiler) applyDefaults() {
	if c.logHandler == nil && c.logger == nil {
		c.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	if c.allowList == nil {
		c.allowList = allowlist.Default()
	}
	if c.maxLength == 0 {
		c.maxLength = DefaultMaxLength
	}
	if c.maxDepth == 0 {
		c.maxDepth = DefaultMaxDepth
	}
}
