// Package safecalc evaluates calculator expressions without executing
// arbitrary code. Only numeric literals, the arithmetic operators
// + - * / // % with parentheses, and the names on an allow-list are
// accepted; anything else is reported as a failed Result.
package safecalc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robbyt/go-safecalc/compiler"
	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/evaluator"
	"github.com/robbyt/go-safecalc/options"
)

var (
	defaultOnce      sync.Once
	defaultEvaluator *evaluator.Evaluator
)

// New creates an evaluator from the given options, starting from
// options.DefaultConfig.
func New(opts ...options.Option) (*evaluator.Evaluator, error) {
	cfg := options.DefaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}

	// Apply defaults option as final step to fill in any missing values
	if err := options.WithDefaults()(cfg); err != nil {
		return nil, fmt.Errorf("error applying defaults: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := compiler.New(cfg.CompilerOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create compiler: %w", err)
	}

	return evaluator.New(cfg.GetHandler(), c), nil
}

// Default returns a shared evaluator with the default allow-list and limits.
// It does not log.
func Default() *evaluator.Evaluator {
	defaultOnce.Do(func() {
		ev, err := New(options.WithLogHandler(slog.DiscardHandler))
		if err != nil {
			panic(fmt.Sprintf("safecalc: default evaluator: %v", err))
		}
		defaultEvaluator = ev
	})
	return defaultEvaluator
}

// Evaluate computes expression with the default evaluator. It never panics
// and never returns an error: failures are carried in the Result.
func Evaluate(expression string) engine.Result {
	return Default().Evaluate(context.Background(), expression)
}

// EvaluateContext is Evaluate with a caller-supplied context.
func EvaluateContext(ctx context.Context, expression string) engine.Result {
	return Default().Evaluate(ctx, expression)
}
