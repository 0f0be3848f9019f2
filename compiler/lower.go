package compiler

import (
	"fmt"
	"math/big"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/internal/numeric"
	"github.com/robbyt/go-safecalc/internal/tree"
)

var binaryOps = map[syntax.Token]tree.Op{
	syntax.PLUS:       tree.Add,
	syntax.MINUS:      tree.Sub,
	syntax.STAR:       tree.Mul,
	syntax.SLASH:      tree.Div,
	syntax.SLASHSLASH: tree.FloorDiv,
	syntax.PERCENT:    tree.Mod,
}

var unaryOps = map[syntax.Token]tree.Op{
	syntax.MINUS: tree.Neg,
	syntax.PLUS:  tree.Pos,
}

// lowerer converts a parsed expression whose identifiers have already been
// checked against list.
type lowerer struct {
	list   *allowlist.List
	powers *powerSource
}

func (l *lowerer) lower(e syntax.Expr) (tree.Node, error) {
	switch e := e.(type) {
	case *syntax.Literal:
		return l.literal(e)

	case *syntax.Ident:
		entry, err := l.entry(e)
		if err != nil {
			return nil, err
		}
		if entry.IsFunction() {
			return nil, evalError(numeric.Errorf(numeric.ErrType,
				fmt.Sprintf("'%s' is a function and must be called", e.Name)))
		}
		return &tree.Name{Entry: entry}, nil

	case *syntax.ParenExpr:
		return l.lower(e.X)

	case *syntax.UnaryExpr:
		op, ok := unaryOps[e.Op]
		if !ok || e.X == nil {
			return nil, unsupportedAt(e.OpPos, "operator %s is not supported", e.Op)
		}
		x, err := l.lower(e.X)
		if err != nil {
			return nil, err
		}
		return &tree.Unary{Op: op, X: x}, nil

	case *syntax.BinaryExpr:
		op, ok := binaryOps[e.Op]
		if !ok {
			return nil, unsupportedAt(e.OpPos, "operator %s is not supported", e.Op)
		}
		return l.binary(op, e.X, e.Y)

	case *syntax.CallExpr:
		return l.call(e)

	case *syntax.TupleExpr:
		return nil, unsupported(e, "tuples are not supported")
	case *syntax.ListExpr:
		return nil, unsupported(e, "lists are not supported")
	case *syntax.DictExpr:
		return nil, unsupported(e, "dicts are not supported")
	case *syntax.Comprehension:
		return nil, unsupported(e, "comprehensions are not supported")
	case *syntax.CondExpr:
		return nil, unsupported(e, "conditional expressions are not supported")
	case *syntax.IndexExpr:
		return nil, unsupported(e, "indexing is not supported")
	case *syntax.SliceExpr:
		return nil, unsupported(e, "slicing is not supported")
	case *syntax.DotExpr:
		return nil, unsupported(e, "attribute access is not supported")
	case *syntax.LambdaExpr:
		return nil, unsupported(e, "lambda is not supported")
	default:
		return nil, unsupported(e, "%T is not supported", e)
	}
}

func (l *lowerer) literal(e *syntax.Literal) (tree.Node, error) {
	switch v := e.Value.(type) {
	case int64:
		return &tree.Const{Value: numeric.Int(v)}, nil
	case *big.Int:
		return nil, evalError(numeric.Errorf(numeric.ErrOverflow,
			fmt.Sprintf("integer literal %s is out of range", e.Raw)))
	case float64:
		return &tree.Const{Value: numeric.Float(v)}, nil
	default:
		return nil, unsupported(e, "%s is not supported", e.Token)
	}
}

func (l *lowerer) binary(op tree.Op, xe, ye syntax.Expr) (tree.Node, error) {
	x, err := l.lower(xe)
	if err != nil {
		return nil, err
	}
	y, err := l.lower(ye)
	if err != nil {
		return nil, err
	}
	return &tree.Binary{Op: op, X: x, Y: y}, nil
}

func (l *lowerer) call(e *syntax.CallExpr) (tree.Node, error) {
	if l.powers != nil && len(e.Args) == 1 && l.powers.isPowerCall(e.Lparen.Line, e.Lparen.Col) {
		if u, ok := e.Args[0].(*syntax.UnaryExpr); ok && u.Op == syntax.STARSTAR {
			return l.binary(tree.Pow, e.Fn, u.X)
		}
	}

	fn := e.Fn
	for {
		p, ok := fn.(*syntax.ParenExpr)
		if !ok {
			break
		}
		fn = p.X
	}

	id, ok := fn.(*syntax.Ident)
	if !ok {
		return nil, unsupported(e, "only named functions can be called")
	}

	entry, err := l.entry(id)
	if err != nil {
		return nil, err
	}

	args := make([]tree.Node, 0, len(e.Args))
	for _, a := range e.Args {
		switch a := a.(type) {
		case *syntax.BinaryExpr:
			if a.Op == syntax.EQ {
				return nil, unsupported(a, "keyword arguments are not supported")
			}
		case *syntax.UnaryExpr:
			if a.Op == syntax.STAR || a.Op == syntax.STARSTAR {
				return nil, unsupported(a, "argument unpacking is not supported")
			}
		}
		n, err := l.lower(a)
		if err != nil {
			return nil, err
		}
		args = append(args, n)
	}

	if err := entry.CheckArity(len(args)); err != nil {
		return nil, evalError(err)
	}

	return &tree.Call{Entry: entry, Args: args}, nil
}

// entry resolves an identifier that already passed the allow-list gate.
func (l *lowerer) entry(id *syntax.Ident) (*allowlist.Entry, error) {
	entry, ok := l.list.Lookup(id.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %w", engine.ErrName, &NameError{Name: id.Name})
	}
	return entry, nil
}
