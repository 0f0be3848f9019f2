// Package compiler turns calculator input into a checked expression tree.
// Parsing is delegated to the Starlark expression grammar, extended with
// Python's ** operator; everything the calculator does not accept is
// rejected before any evaluation happens.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/engine"
)

const sourceName = "<expr>"

type Compiler struct {
	allowList  *allowlist.List
	maxLength  int
	maxDepth   int
	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Compiler with the provided options. Without options it uses
// the default math allow-list and default limits.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	c.setupLogger()
	return c, nil
}

func (c *Compiler) String() string {
	return "safecalc.Compiler"
}

// AllowList returns the names this compiler resolves.
func (c *Compiler) AllowList() *allowlist.List {
	return c.allowList
}

// CompileReader reads the whole expression from r, closes it, and compiles it.
func (c *Compiler) CompileReader(r io.ReadCloser) (*Executable, error) {
	if r == nil {
		return nil, ErrContentNil
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read expression: %w", err)
	}

	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("failed to close reader: %w", err)
	}

	return c.Compile(string(body))
}

// Compile checks expression and lowers it into an Executable. Returned errors
// wrap one of the engine sentinels: ErrEmptyInput, ErrLimit, ErrSyntax,
// ErrName, or ErrEvaluation for checks that fail on a well-formed expression.
func (c *Compiler) Compile(expression string) (*Executable, error) {
	logger := c.logger.WithGroup("compile")

	src := strings.TrimSpace(expression)
	if src == "" {
		logger.Debug("Compile called with empty input")
		return nil, engine.ErrEmptyInput
	}

	if len(src) > c.maxLength {
		logger.Warn("Expression too long", "length", len(src), "limit", c.maxLength)
		return nil, fmt.Errorf("%w: %w", engine.ErrLimit,
			&LimitError{What: "expression length", Got: len(src), Limit: c.maxLength})
	}

	ps := rewritePowers(src)
	parsed, err := parse(ps.text)
	if err != nil {
		ps.restore(err)
		logger.Debug("Parse failed", "error", err)
		return nil, fmt.Errorf("%w: %w", engine.ErrSyntax, err)
	}

	if d := depth(parsed); d > c.maxDepth {
		logger.Warn("Expression too deep", "depth", d, "limit", c.maxDepth)
		return nil, fmt.Errorf("%w: %w", engine.ErrLimit,
			&LimitError{What: "expression depth", Got: d, Limit: c.maxDepth})
	}

	names := identifiers(parsed)
	for _, name := range names {
		if !c.allowList.Has(name) {
			logger.Warn("Rejected identifier", "name", name)
			return nil, fmt.Errorf("%w: %w", engine.ErrName, &NameError{Name: name})
		}
	}

	l := &lowerer{list: c.allowList, powers: ps}
	root, err := l.lower(parsed)
	if err != nil {
		ps.restore(err)
		logger.Debug("Lowering failed", "error", err)
		return nil, err
	}

	logger.Debug("Compiled expression", "length", len(src), "names", len(names))
	return newExecutable(src, root, names), nil
}

func parse(src string) (syntax.Expr, error) {
	opts := &syntax.FileOptions{}
	expr, err := opts.ParseExpr(sourceName, src, 0)
	if err != nil {
		var se syntax.Error
		if errors.As(err, &se) {
			return nil, &SyntaxError{Line: int(se.Pos.Line), Col: int(se.Pos.Col), Msg: se.Msg}
		}
		return nil, &SyntaxError{Msg: err.Error()}
	}
	if expr == nil {
		return nil, ErrNilExpressionAST
	}
	return expr, nil
}

// depth returns the length of the longest root-to-leaf path in e.
func depth(e syntax.Expr) int {
	cur, deepest := 0, 0
	syntax.Walk(e, func(n syntax.Node) bool {
		if n == nil {
			cur--
			return false
		}
		cur++
		if cur > deepest {
			deepest = cur
		}
		return true
	})
	return deepest
}

// identifiers returns every name e refers to, in source order without
// duplicates. Attribute names count; keyword argument names do not.
func identifiers(e syntax.Expr) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var visit func(n syntax.Node) bool
	visit = func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.Ident:
			add(n.Name)
		case *syntax.DotExpr:
			syntax.Walk(n.X, visit)
			add(n.Name.Name)
			return false
		case *syntax.CallExpr:
			syntax.Walk(n.Fn, visit)
			for _, arg := range n.Args {
				if kw, ok := arg.(*syntax.BinaryExpr); ok && kw.Op == syntax.EQ {
					if _, isName := kw.X.(*syntax.Ident); isName {
						syntax.Walk(kw.Y, visit)
						continue
					}
				}
				syntax.Walk(arg, visit)
			}
			return false
		}
		return true
	}
	syntax.Walk(e, visit)
	return names
}

func unsupported(n syntax.Node, format string, args ...any) error {
	start, _ := n.Span()
	return unsupportedAt(start, format, args...)
}

func unsupportedAt(pos syntax.Position, format string, args ...any) error {
	return fmt.Errorf("%w: %w", engine.ErrSyntax, &SyntaxError{
		Line: int(pos.Line),
		Col:  int(pos.Col),
		Msg:  fmt.Sprintf(format, args...),
	})
}

func evalError(err error) error {
	return fmt.Errorf("%w: %w", engine.ErrEvaluation, err)
}
