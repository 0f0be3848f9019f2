package compiler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/engine"
	"github.com/robbyt/go-safecalc/internal/numeric"
	"github.com/robbyt/go-safecalc/internal/tree"
)

// mockReadCloser implements io.ReadCloser for testing
type mockReadCloser struct {
	*mock.Mock
	*strings.Reader
}

func newMockReadCloser(content string) *mockReadCloser {
	return &mockReadCloser{Mock: &mock.Mock{}, Reader: strings.NewReader(content)}
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}

// mockErrorReader implements io.ReadCloser for testing read errors
type mockErrorReader struct{}

func (m *mockErrorReader) Read(p []byte) (n int, err error) {
	return 0, errors.New("test error")
}

func (m *mockErrorReader) Close() error {
	return nil
}

func newTestCompiler(t *testing.T, opts ...FunctionalOption) *Compiler {
	t.Helper()
	opts = append([]FunctionalOption{WithLogHandler(slog.NewTextHandler(os.Stdout, nil))}, opts...)
	c, err := New(opts...)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		c, err := New()
		require.NoError(t, err)
		require.Equal(t, "safecalc.Compiler", c.String())
		require.Same(t, allowlist.Default(), c.AllowList())
		require.Equal(t, DefaultMaxLength, c.maxLength)
		require.Equal(t, DefaultMaxDepth, c.maxDepth)
	})

	t.Run("with logger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		c, err := New(WithLogger(logger))
		require.NoError(t, err)
		require.Same(t, logger, c.logger)
		require.Equal(t, logger.Handler(), c.logHandler)
	})

	t.Run("custom allow-list", func(t *testing.T) {
		list := allowlist.MustNew(allowlist.Constant("answer", numeric.Int(42), ""))
		c := newTestCompiler(t, WithAllowList(list))
		require.Same(t, list, c.AllowList())
	})

	t.Run("option errors", func(t *testing.T) {
		tests := []struct {
			name    string
			opt     FunctionalOption
			wantErr error
		}{
			{"nil allow-list", WithAllowList(nil), ErrNilAllowList},
			{"zero length", WithMaxLength(0), ErrInvalidLimit},
			{"negative depth", WithMaxDepth(-1), ErrInvalidLimit},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				c, err := New(tc.opt)
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, c)
			})
		}

		_, err := New(WithLogHandler(nil))
		require.Error(t, err)
		_, err = New(WithLogger(nil))
		require.Error(t, err)
	})
}

func TestCompile(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	t.Run("precedence", func(t *testing.T) {
		exe, err := c.Compile("2+3*4")
		require.NoError(t, err)
		require.Equal(t, "2+3*4", exe.GetSource())
		want := &tree.Binary{
			Op: tree.Add,
			X:  &tree.Const{Value: numeric.Int(2)},
			Y: &tree.Binary{
				Op: tree.Mul,
				X:  &tree.Const{Value: numeric.Int(3)},
				Y:  &tree.Const{Value: numeric.Int(4)},
			},
		}
		assert.Equal(t, want, exe.GetRoot())
		assert.Empty(t, exe.GetNames())
	})

	t.Run("names and calls", func(t *testing.T) {
		exe, err := c.Compile("  sqrt(pi) + log(e, 2)\n")
		require.NoError(t, err)
		require.Equal(t, "sqrt(pi) + log(e, 2)", exe.GetSource())
		assert.Equal(t, []string{"sqrt", "pi", "log", "e"}, exe.GetNames())

		root, ok := exe.GetRoot().(*tree.Binary)
		require.True(t, ok)
		call, ok := root.X.(*tree.Call)
		require.True(t, ok)
		assert.Equal(t, "sqrt", call.Entry.Name())
		require.Len(t, call.Args, 1)
		name, ok := call.Args[0].(*tree.Name)
		require.True(t, ok)
		assert.Equal(t, "pi", name.Entry.Name())
	})

	t.Run("parentheses and unary", func(t *testing.T) {
		exe, err := c.Compile("-(1.5)")
		require.NoError(t, err)
		assert.Equal(t, &tree.Unary{Op: tree.Neg, X: &tree.Const{Value: numeric.Float(1.5)}}, exe.GetRoot())
	})

	t.Run("power", func(t *testing.T) {
		two, three := &tree.Const{Value: numeric.Int(2)}, &tree.Const{Value: numeric.Int(3)}
		tests := []struct {
			name  string
			input string
			want  tree.Node
		}{
			{"simple", "2**3", &tree.Binary{Op: tree.Pow, X: two, Y: three}},
			{
				"right associative",
				"2 ** 2 ** 3",
				&tree.Binary{Op: tree.Pow, X: two, Y: &tree.Binary{Op: tree.Pow, X: two, Y: three}},
			},
			{
				"unary minus applies to the power",
				"-2 ** 3",
				&tree.Unary{Op: tree.Neg, X: &tree.Binary{Op: tree.Pow, X: two, Y: three}},
			},
			{
				"signed exponent",
				"2 ** -3",
				&tree.Binary{Op: tree.Pow, X: two, Y: &tree.Unary{Op: tree.Neg, X: three}},
			},
			{
				"binds tighter than multiplication",
				"3 * 2 ** 2",
				&tree.Binary{Op: tree.Mul, X: three, Y: &tree.Binary{Op: tree.Pow, X: two, Y: two}},
			},
			{
				"parenthesized base",
				"(2 + 3) ** 2",
				&tree.Binary{Op: tree.Pow, X: &tree.Binary{Op: tree.Add, X: two, Y: three}, Y: two},
			},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				exe, err := c.Compile(tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.want, exe.GetRoot())
				assert.Equal(t, tc.input, exe.GetSource())
			})
		}

		exe, err := c.Compile("sqrt(pi) ** e")
		require.NoError(t, err)
		assert.Equal(t, []string{"sqrt", "pi", "e"}, exe.GetNames())
		root, ok := exe.GetRoot().(*tree.Binary)
		require.True(t, ok)
		assert.Equal(t, tree.Pow, root.Op)
		assert.IsType(t, &tree.Call{}, root.X)
	})

	t.Run("parenthesized function name", func(t *testing.T) {
		_, err := c.Compile("(sqrt)(4)")
		require.NoError(t, err)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := c.Compile("floor(7 / 2) % 3")
		require.NoError(t, err)
		b, err := c.Compile("floor(7 / 2) % 3")
		require.NoError(t, err)
		assert.Equal(t, a.GetRoot(), b.GetRoot())
	})

	t.Run("names is a copy", func(t *testing.T) {
		exe, err := c.Compile("pi")
		require.NoError(t, err)
		names := exe.GetNames()
		names[0] = "open"
		assert.Equal(t, []string{"pi"}, exe.GetNames())
	})
}

func TestCompileFailures(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	tests := []struct {
		name    string
		input   string
		wantErr error
		message string
	}{
		{"empty", "", engine.ErrEmptyInput, "empty input"},
		{"whitespace", " \t\n ", engine.ErrEmptyInput, "empty input"},
		{"incomplete", "2 +", engine.ErrSyntax, ""},
		{"unbalanced", "(1 + 2", engine.ErrSyntax, ""},
		{"dangling power", "2 **", engine.ErrSyntax, ""},
		{"argument unpacking", "hypot(**pi)", engine.ErrSyntax, "1:7: argument unpacking is not supported"},
		{"power of a string", "2 ** 'a'", engine.ErrSyntax, "1:6: string literal is not supported"},
		{"position after a power", "2 ** 3 < 1", engine.ErrSyntax, "1:8: operator < is not supported"},
		{"power of a function", "sqrt ** 2", engine.ErrEvaluation, "'sqrt' is a function and must be called"},
		{"name inside a power", "2 ** x", engine.ErrName, "use of 'x' is not allowed"},
		{"float literal out of range", "1e309", engine.ErrSyntax, ""},
		{"statement", "x = 1", engine.ErrSyntax, ""},
		{"import", "__import__('os')", engine.ErrName, "use of '__import__' is not allowed"},
		{"open", "open('x')", engine.ErrName, "use of 'open' is not allowed"},
		{"dunder attribute", "().__class__", engine.ErrName, "use of '__class__' is not allowed"},
		{"attribute of constant", "pi.real", engine.ErrName, "use of 'real' is not allowed"},
		{"unknown variable", "1 + x", engine.ErrName, "use of 'x' is not allowed"},
		{"first offender wins", "y + x", engine.ErrName, "use of 'y' is not allowed"},
		{"eval", "eval('1')", engine.ErrName, "use of 'eval' is not allowed"},
		{"boolean", "True + 1", engine.ErrName, "use of 'True' is not allowed"},
		{"string", "'abc'", engine.ErrSyntax, "1:1: string literal is not supported"},
		{"list", "[1, 2]", engine.ErrSyntax, "1:1: lists are not supported"},
		{"tuple", "1, 2", engine.ErrSyntax, "1:1: tuples are not supported"},
		{"comparison", "1 < 2", engine.ErrSyntax, "1:3: operator < is not supported"},
		{"bitwise", "1 | 2", engine.ErrSyntax, "1:3: operator | is not supported"},
		{"conditional", "1 if 2 else 3", engine.ErrSyntax, "1:1: conditional expressions are not supported"},
		{"lambda", "lambda: 1", engine.ErrSyntax, "1:1: lambda is not supported"},
		{"keyword argument", "sqrt(x=4)", engine.ErrSyntax, "1:6: keyword arguments are not supported"},
		{"function as value", "sqrt + 1", engine.ErrEvaluation, "'sqrt' is a function and must be called"},
		{"too many arguments", "sqrt(1, 2)", engine.ErrEvaluation, "sqrt() takes exactly one argument (2 given)"},
		{"constant called", "pi(1)", engine.ErrEvaluation, "'pi' is not callable"},
		{"huge literal", "99999999999999999999", engine.ErrEvaluation, "integer literal 99999999999999999999 is out of range"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			exe, err := c.Compile(tc.input)
			require.Error(t, err)
			require.Nil(t, exe)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.message != "" {
				assert.Equal(t, tc.message, engine.FromError(err).Failure().Message)
			}
		})
	}
}

func TestCompileErrorTypes(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	_, err := c.Compile("2 +")
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Line)
	assert.Positive(t, se.Col)

	_, err = c.Compile("open('x')")
	var ne *NameError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "open", ne.Name)
}

func TestCompileLimits(t *testing.T) {
	t.Parallel()

	t.Run("length", func(t *testing.T) {
		c := newTestCompiler(t, WithMaxLength(5))
		_, err := c.Compile("1+2+3+4")
		require.ErrorIs(t, err, engine.ErrLimit)
		var le *LimitError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, 7, le.Got)
		assert.Equal(t, "expression length 7 exceeds limit of 5", engine.FromError(err).Failure().Message)

		_, err = c.Compile("  1+2  ")
		require.NoError(t, err, "surrounding whitespace does not count")
	})

	t.Run("depth", func(t *testing.T) {
		c := newTestCompiler(t, WithMaxDepth(3))
		_, err := c.Compile("-(-(-1))")
		require.ErrorIs(t, err, engine.ErrLimit)

		_, err = c.Compile("1+2")
		require.NoError(t, err)
	})

	t.Run("deep nesting within the default", func(t *testing.T) {
		c := newTestCompiler(t)
		expr := strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50)
		_, err := c.Compile(expr)
		require.NoError(t, err)

		expr = strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300)
		_, err = c.Compile(expr)
		require.ErrorIs(t, err, engine.ErrLimit)
	})
}

func TestCompileReader(t *testing.T) {
	t.Parallel()
	c := newTestCompiler(t)

	t.Run("success", func(t *testing.T) {
		r := newMockReadCloser("2 * 21\n")
		r.On("Close").Return(nil)
		exe, err := c.CompileReader(r)
		require.NoError(t, err)
		assert.Equal(t, "2 * 21", exe.GetSource())
		r.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := c.CompileReader(nil)
		require.ErrorIs(t, err, ErrContentNil)
	})

	t.Run("read error", func(t *testing.T) {
		_, err := c.CompileReader(&mockErrorReader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read expression")
	})

	t.Run("close error", func(t *testing.T) {
		r := newMockReadCloser("1")
		r.On("Close").Return(errors.New("close failed"))
		_, err := c.CompileReader(r)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to close reader")
		r.AssertExpectations(t)
	})

	t.Run("nop closer", func(t *testing.T) {
		exe, err := c.CompileReader(io.NopCloser(bytes.NewBufferString("pi")))
		require.NoError(t, err)
		assert.Equal(t, []string{"pi"}, exe.GetNames())
	})
}
