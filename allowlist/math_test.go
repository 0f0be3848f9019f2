package allowlist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-safecalc/internal/numeric"
)

func call(t *testing.T, name string, args ...numeric.Value) (numeric.Value, error) {
	t.Helper()
	e, ok := Default().Lookup(name)
	require.True(t, ok, "missing %s", name)
	return e.Call(args)
}

func TestMathFunctions(t *testing.T) {
	t.Parallel()

	i, f := numeric.Int, numeric.Float
	tests := []struct {
		name    string
		fn      string
		args    []numeric.Value
		want    float64
		wantInt bool
	}{
		{"sqrt", "sqrt", []numeric.Value{i(16)}, 4, false},
		{"cbrt", "cbrt", []numeric.Value{i(27)}, 3, false},
		{"sin zero", "sin", []numeric.Value{i(0)}, 0, false},
		{"cos zero", "cos", []numeric.Value{i(0)}, 1, false},
		{"exp", "exp", []numeric.Value{i(1)}, math.E, false},
		{"log", "log", []numeric.Value{f(math.E)}, 1, false},
		{"log with base", "log", []numeric.Value{i(8), i(2)}, 3, false},
		{"log10", "log10", []numeric.Value{i(1000)}, 3, false},
		{"log2", "log2", []numeric.Value{i(1024)}, 10, false},
		{"pow", "pow", []numeric.Value{i(2), i(10)}, 1024, false},
		{"hypot", "hypot", []numeric.Value{i(3), i(4)}, 5, false},
		{"hypot no args", "hypot", nil, 0, false},
		{"degrees", "degrees", []numeric.Value{f(math.Pi)}, 180, false},
		{"radians", "radians", []numeric.Value{i(180)}, math.Pi, false},
		{"fabs", "fabs", []numeric.Value{i(-3)}, 3, false},
		{"fmod", "fmod", []numeric.Value{i(-7), i(3)}, -1, false},
		{"copysign", "copysign", []numeric.Value{i(3), f(math.Copysign(0, -1))}, -3, false},
		{"ldexp", "ldexp", []numeric.Value{f(0.5), i(3)}, 4, false},
		{"fma", "fma", []numeric.Value{i(2), i(3), i(4)}, 10, false},
		{"ceil", "ceil", []numeric.Value{f(1.2)}, 2, true},
		{"floor negative", "floor", []numeric.Value{f(-1.2)}, -2, true},
		{"trunc", "trunc", []numeric.Value{f(-1.7)}, -1, true},
		{"ceil of int", "ceil", []numeric.Value{i(7)}, 7, true},
		{"factorial", "factorial", []numeric.Value{i(5)}, 120, true},
		{"factorial zero", "factorial", []numeric.Value{i(0)}, 1, true},
		{"isqrt", "isqrt", []numeric.Value{i(17)}, 4, true},
		{"isqrt large", "isqrt", []numeric.Value{i(math.MaxInt64)}, 3037000499, true},
		{"gcd", "gcd", []numeric.Value{i(12), i(-18)}, 6, true},
		{"gcd empty", "gcd", nil, 0, true},
		{"lcm", "lcm", []numeric.Value{i(4), i(6)}, 12, true},
		{"lcm empty", "lcm", nil, 1, true},
		{"lcm zero", "lcm", []numeric.Value{i(4), i(0)}, 0, true},
		{"comb", "comb", []numeric.Value{i(5), i(2)}, 10, true},
		{"comb large", "comb", []numeric.Value{i(60), i(30)}, 118264581564861424, true},
		{"comb k over n", "comb", []numeric.Value{i(2), i(5)}, 0, true},
		{"perm", "perm", []numeric.Value{i(5), i(2)}, 20, true},
		{"perm one arg", "perm", []numeric.Value{i(4)}, 24, true},
		{"perm of max int taking none", "perm", []numeric.Value{i(math.MaxInt64), i(0)}, 1, true},
		{"perm of max int taking one", "perm", []numeric.Value{i(math.MaxInt64), i(1)}, math.MaxInt64, true},
		{"perm taking all", "perm", []numeric.Value{i(5), i(5)}, 120, true},
		{"isnan", "isnan", []numeric.Value{f(math.NaN())}, 1, true},
		{"isinf", "isinf", []numeric.Value{i(1)}, 0, true},
		{"isfinite", "isfinite", []numeric.Value{f(2.5)}, 1, true},
		{"infinity passes through", "sqrt", []numeric.Value{f(math.Inf(1))}, math.Inf(1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := call(t, tc.fn, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInt, got.IsInt())
			if math.IsInf(tc.want, 0) {
				assert.Equal(t, tc.want, got.Float64())
				return
			}
			assert.InDelta(t, tc.want, got.Float64(), 1e-9)
		})
	}
}

func TestMathErrors(t *testing.T) {
	t.Parallel()

	i, f := numeric.Int, numeric.Float
	tests := []struct {
		name    string
		fn      string
		args    []numeric.Value
		kind    error
		message string
	}{
		{"sqrt negative", "sqrt", []numeric.Value{i(-1)}, numeric.ErrDomain, "math domain error"},
		{"log zero", "log", []numeric.Value{i(0)}, numeric.ErrDomain, "math domain error"},
		{"log negative base", "log", []numeric.Value{i(2), i(-2)}, numeric.ErrDomain, "math domain error"},
		{"log base one", "log", []numeric.Value{i(2), i(1)}, numeric.ErrZeroDivision, "float division by zero"},
		{"log10 zero", "log10", []numeric.Value{i(0)}, numeric.ErrDomain, "math domain error"},
		{"log1p minus one", "log1p", []numeric.Value{i(-1)}, numeric.ErrDomain, "math domain error"},
		{"acos out of range", "acos", []numeric.Value{i(2)}, numeric.ErrDomain, "math domain error"},
		{"atanh one", "atanh", []numeric.Value{i(1)}, numeric.ErrDomain, "math domain error"},
		{"gamma pole", "gamma", []numeric.Value{i(-2)}, numeric.ErrDomain, "math domain error"},
		{"lgamma pole", "lgamma", []numeric.Value{i(0)}, numeric.ErrDomain, "math domain error"},
		{"sin infinity", "sin", []numeric.Value{f(math.Inf(1))}, numeric.ErrDomain, "math domain error"},
		{"pow zero negative", "pow", []numeric.Value{i(0), i(-1)}, numeric.ErrDomain, "math domain error"},
		{"pow negative fractional", "pow", []numeric.Value{i(-8), f(1.0 / 3)}, numeric.ErrDomain, "math domain error"},
		{"fmod by zero", "fmod", []numeric.Value{i(1), i(0)}, numeric.ErrDomain, "math domain error"},
		{"exp overflow", "exp", []numeric.Value{i(1000)}, numeric.ErrRange, "math range error"},
		{"pow overflow", "pow", []numeric.Value{i(10), i(400)}, numeric.ErrRange, "math range error"},
		{"ceil nan", "ceil", []numeric.Value{f(math.NaN())}, numeric.ErrDomain, "cannot convert float NaN to integer"},
		{"floor infinity", "floor", []numeric.Value{f(math.Inf(-1))}, numeric.ErrOverflow, "cannot convert float infinity to integer"},
		{"floor huge", "floor", []numeric.Value{f(1e300)}, numeric.ErrOverflow, "integer overflow"},
		{"factorial negative", "factorial", []numeric.Value{i(-1)}, numeric.ErrDomain, "factorial() not defined for negative values"},
		{"factorial float", "factorial", []numeric.Value{f(5)}, numeric.ErrType, "'float' object cannot be interpreted as an integer"},
		{"factorial overflow", "factorial", []numeric.Value{i(21)}, numeric.ErrOverflow, "integer overflow in multiplication"},
		{"isqrt negative", "isqrt", []numeric.Value{i(-4)}, numeric.ErrDomain, "isqrt() argument must be nonnegative"},
		{"comb negative", "comb", []numeric.Value{i(-1), i(1)}, numeric.ErrDomain, "comb(): n must be a non-negative integer"},
		{"perm overflow", "perm", []numeric.Value{i(math.MaxInt64), i(2)}, numeric.ErrOverflow, "integer overflow in multiplication"},
		{"perm negative k", "perm", []numeric.Value{i(3), i(-1)}, numeric.ErrDomain, "perm(): k must be a non-negative integer"},
		{"gcd float", "gcd", []numeric.Value{f(1.5)}, numeric.ErrType, "'float' object cannot be interpreted as an integer"},
		{"ldexp float exponent", "ldexp", []numeric.Value{i(1), f(2)}, numeric.ErrType, "'float' object cannot be interpreted as an integer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := call(t, tc.fn, tc.args...)
			require.Error(t, err)
			require.ErrorIs(t, err, tc.kind)
			require.Equal(t, tc.message, err.Error())
		})
	}
}

func TestCallChecksArity(t *testing.T) {
	t.Parallel()

	_, err := call(t, "sqrt", numeric.Int(1), numeric.Int(2))
	require.ErrorIs(t, err, numeric.ErrType)
}
