// Package evaluator computes the value of compiled calculator expressions.
package evaluator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-safecalc/compiler"
	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/internal/helpers"
	"github.com/robbyt/go-safecalc/internal/numeric"
	"github.com/robbyt/go-safecalc/internal/tree"
)

var _ engine.Evaluator = (*Evaluator)(nil)

// ErrNilExecutable is returned by Run when no compiled expression is given.
var ErrNilExecutable = errors.New("executable is nil")

// Evaluator compiles and walks arithmetic expressions. It holds no mutable
// state and is safe for concurrent use.
type Evaluator struct {
	compiler *compiler.Compiler

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Evaluator. A nil compiler is replaced by one built with the
// default allow-list and limits, logging to handler.
func New(handler slog.Handler, c *compiler.Compiler) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "safecalc", "Evaluator")
	if c == nil {
		var err error
		c, err = compiler.New(compiler.WithLogHandler(handler))
		if err != nil {
			// Only reachable with a nil handler, which SetupLogger never returns.
			panic(fmt.Sprintf("default compiler: %v", err))
		}
	}

	return &Evaluator{
		compiler:   c,
		logHandler: handler,
		logger:     logger,
	}
}

func (ev *Evaluator) String() string {
	return "safecalc.Evaluator"
}

// Compiler returns the compiler used by Evaluate.
func (ev *Evaluator) Compiler() *compiler.Compiler {
	return ev.compiler
}

// Evaluate compiles expression and runs it. Every failure, including a panic
// inside a math function, is returned as a failed Result.
func (ev *Evaluator) Evaluate(ctx context.Context, expression string) (result engine.Result) {
	logger := ev.logger.WithGroup("Evaluate")
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "recovered from panic", "panic", r)
			result = engine.FromError(internalError(r))
		}
		result = result.WithExecTime(time.Since(start))
		logger.DebugContext(ctx, "evaluation complete", "result", result.Inspect())
	}()

	exe, err := ev.compiler.Compile(expression)
	if err != nil {
		return engine.FromError(err)
	}
	return ev.run(ctx, exe)
}

// Run evaluates an already compiled expression.
func (ev *Evaluator) Run(ctx context.Context, exe *compiler.Executable) (result engine.Result) {
	logger := ev.logger.WithGroup("Run")
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "recovered from panic", "panic", r)
			result = engine.FromError(internalError(r))
		}
		result = result.WithExecTime(time.Since(start))
	}()

	if exe == nil {
		return engine.FromError(fmt.Errorf("%w: %w", engine.ErrEvaluation, ErrNilExecutable))
	}
	return ev.run(ctx, exe)
}

func (ev *Evaluator) run(ctx context.Context, exe *compiler.Executable) engine.Result {
	if err := ctx.Err(); err != nil {
		return engine.FromError(fmt.Errorf("%w: %w", engine.ErrEvaluation, err))
	}

	v, err := eval(ctx, exe.GetRoot())
	if err != nil {
		return engine.FromError(fmt.Errorf("%w: %w", engine.ErrEvaluation, err))
	}
	return engine.FromValue(v)
}

func internalError(r any) error {
	return fmt.Errorf("%w: %w", engine.ErrEvaluation, fmt.Errorf("internal error: %v", r))
}

func eval(ctx context.Context, n tree.Node) (numeric.Value, error) {
	switch n := n.(type) {
	case *tree.Const:
		return n.Value, nil

	case *tree.Name:
		return n.Entry.Value(), nil

	case *tree.Unary:
		x, err := eval(ctx, n.X)
		if err != nil {
			return numeric.Value{}, err
		}
		if n.Op == tree.Neg {
			return numeric.Neg(x)
		}
		return numeric.Pos(x)

	case *tree.Binary:
		x, err := eval(ctx, n.X)
		if err != nil {
			return numeric.Value{}, err
		}
		y, err := eval(ctx, n.Y)
		if err != nil {
			return numeric.Value{}, err
		}
		return binary(n.Op, x, y)

	case *tree.Call:
		if err := ctx.Err(); err != nil {
			return numeric.Value{}, err
		}
		args := make([]numeric.Value, len(n.Args))
		for i, a := range n.Args {
			v, err := eval(ctx, a)
			if err != nil {
				return numeric.Value{}, err
			}
			args[i] = v
		}
		return n.Entry.Call(args)

	default:
		return numeric.Value{}, fmt.Errorf("unexpected node %T", n)
	}
}

func binary(op tree.Op, x, y numeric.Value) (numeric.Value, error) {
	switch op {
	case tree.Add:
		return numeric.Add(x, y)
	case tree.Sub:
		return numeric.Sub(x, y)
	case tree.Mul:
		return numeric.Mul(x, y)
	case tree.Div:
		return numeric.Div(x, y)
	case tree.FloorDiv:
		return numeric.FloorDiv(x, y)
	case tree.Mod:
		return numeric.Mod(x, y)
	case tree.Pow:
		return numeric.Pow(x, y)
	default:
		return numeric.Value{}, fmt.Errorf("unexpected binary operator %s", op)
	}
}
