package allowlist

import (
	"fmt"
	"math"

	"github.com/robbyt/go-safecalc/internal/numeric"
)

// Excluded lists the names of the Python math module that have no entry in
// Default, with the reason they are left out.
var Excluded = map[string]string{
	"frexp":   "returns a tuple",
	"modf":    "returns a tuple",
	"fsum":    "takes an iterable",
	"prod":    "takes an iterable",
	"dist":    "takes iterables",
	"sumprod": "takes iterables",
	"isclose": "takes keyword arguments",
}

var defaultList = MustNew(mathEntries()...)

// Default returns the standard math allow-list: the numeric constants and
// functions of Python's math module that take and return plain numbers.
func Default() *List {
	return defaultList
}

func mathEntries() []*Entry {
	return []*Entry{
		Constant("pi", numeric.Float(math.Pi), "ratio of a circle's circumference to its diameter"),
		Constant("e", numeric.Float(math.E), "Euler's number"),
		Constant("tau", numeric.Float(2*math.Pi), "2*pi"),
		Constant("inf", numeric.Float(math.Inf(1)), "positive infinity"),
		Constant("nan", numeric.Float(math.NaN()), "not a number"),

		unary("acos", math.Acos, outside(-1, 1), "arc cosine in radians"),
		unary("acosh", math.Acosh, below(1), "inverse hyperbolic cosine"),
		unary("asin", math.Asin, outside(-1, 1), "arc sine in radians"),
		unary("asinh", math.Asinh, nil, "inverse hyperbolic sine"),
		unary("atan", math.Atan, nil, "arc tangent in radians"),
		unary("atanh", math.Atanh, func(x float64) bool { return x <= -1 || x >= 1 }, "inverse hyperbolic tangent"),
		unary("cbrt", math.Cbrt, nil, "cube root"),
		unary("cos", math.Cos, infinite, "cosine of x radians"),
		unary("cosh", math.Cosh, nil, "hyperbolic cosine"),
		unary("degrees", func(x float64) float64 { return x * (180 / math.Pi) }, nil, "radians to degrees"),
		unary("erf", math.Erf, nil, "error function"),
		unary("erfc", math.Erfc, nil, "complementary error function"),
		unary("exp", math.Exp, nil, "e raised to the power x"),
		unary("exp2", math.Exp2, nil, "2 raised to the power x"),
		unary("expm1", math.Expm1, nil, "exp(x) - 1"),
		unary("fabs", math.Abs, nil, "absolute value as a float"),
		unary("gamma", math.Gamma, gammaPole, "gamma function"),
		unary("lgamma", lgamma, lgammaPole, "natural logarithm of the absolute value of gamma"),
		unary("log10", math.Log10, nonPositive, "base-10 logarithm"),
		unary("log1p", math.Log1p, func(x float64) bool { return x <= -1 }, "natural logarithm of 1+x"),
		unary("log2", math.Log2, nonPositive, "base-2 logarithm"),
		unary("radians", func(x float64) float64 { return x * (math.Pi / 180) }, nil, "degrees to radians"),
		unary("sin", math.Sin, infinite, "sine of x radians"),
		unary("sinh", math.Sinh, nil, "hyperbolic sine"),
		unary("sqrt", math.Sqrt, below(0), "square root"),
		unary("tan", math.Tan, infinite, "tangent of x radians"),
		unary("tanh", math.Tanh, nil, "hyperbolic tangent"),
		unary("ulp", ulp, nil, "value of the least significant bit of x"),

		binary("atan2", math.Atan2, nil, "arc tangent of y/x in radians"),
		binary("copysign", math.Copysign, nil, "x with the sign of y"),
		binary("fmod", math.Mod, func(x, y float64) bool { return y == 0 || math.IsInf(x, 0) }, "C-style remainder of x/y"),
		binary("nextafter", math.Nextafter, nil, "next float after x towards y"),
		binary("pow", math.Pow, func(x, y float64) bool { return x == 0 && y < 0 }, "x raised to the power y"),
		binary("remainder", math.Remainder, func(x, y float64) bool { return y == 0 || math.IsInf(x, 0) }, "IEEE 754 remainder of x/y"),

		Function("fma", 3, 3, fma, "x*y + z with a single rounding"),
		Function("ceil", 1, 1, rounding(math.Ceil), "smallest integer >= x"),
		Function("floor", 1, 1, rounding(math.Floor), "largest integer <= x"),
		Function("trunc", 1, 1, rounding(math.Trunc), "x truncated towards zero"),
		Function("log", 1, 2, logFn, "natural logarithm, or logarithm of x to base y"),
		Function("hypot", 0, Variadic, hypot, "Euclidean norm of the arguments"),
		Function("ldexp", 2, 2, ldexp, "x * 2**i"),
		Function("isfinite", 1, 1, predicate(func(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }), "1 if x is finite, else 0"),
		Function("isinf", 1, 1, predicate(func(x float64) bool { return math.IsInf(x, 0) }), "1 if x is infinite, else 0"),
		Function("isnan", 1, 1, predicate(math.IsNaN), "1 if x is not a number, else 0"),

		Function("factorial", 1, 1, factorial, "n!"),
		Function("isqrt", 1, 1, isqrt, "integer square root of n"),
		Function("gcd", 0, Variadic, gcd, "greatest common divisor of the integer arguments"),
		Function("lcm", 0, Variadic, lcm, "least common multiple of the integer arguments"),
		Function("comb", 2, 2, comb, "ways to choose k items from n without order"),
		Function("perm", 1, 2, perm, "ways to choose k items from n with order"),
	}
}

// unary wraps a float function. bad reports inputs outside the function's
// domain; a nil bad accepts every input.
func unary(name string, fn func(float64) float64, bad func(float64) bool, doc string) *Entry {
	return Function(name, 1, 1, func(args []numeric.Value) (numeric.Value, error) {
		x := args[0].Float64()
		if bad != nil && bad(x) {
			return numeric.Value{}, domainError()
		}
		return finish(fn(x), x)
	}, doc)
}

func binary(name string, fn func(float64, float64) float64, bad func(float64, float64) bool, doc string) *Entry {
	return Function(name, 2, 2, func(args []numeric.Value) (numeric.Value, error) {
		x, y := args[0].Float64(), args[1].Float64()
		if bad != nil && bad(x, y) {
			return numeric.Value{}, domainError()
		}
		return finish(fn(x, y), x, y)
	}, doc)
}

// finish classifies a result the way CPython's math module does: NaN from
// non-NaN inputs is a domain error, infinity from finite inputs is a range
// error.
func finish(r float64, in ...float64) (numeric.Value, error) {
	if math.IsNaN(r) {
		for _, x := range in {
			if math.IsNaN(x) {
				return numeric.Float(r), nil
			}
		}
		return numeric.Value{}, domainError()
	}
	if math.IsInf(r, 0) {
		for _, x := range in {
			if math.IsInf(x, 0) || math.IsNaN(x) {
				return numeric.Float(r), nil
			}
		}
		return numeric.Value{}, numeric.Errorf(numeric.ErrRange, "math range error")
	}
	return numeric.Float(r), nil
}

func domainError() error {
	return numeric.Errorf(numeric.ErrDomain, "math domain error")
}

func outside(lo, hi float64) func(float64) bool {
	return func(x float64) bool { return x < lo || x > hi }
}

func below(lo float64) func(float64) bool {
	return func(x float64) bool { return x < lo }
}

func nonPositive(x float64) bool { return x <= 0 }

func infinite(x float64) bool { return math.IsInf(x, 0) }

func gammaPole(x float64) bool {
	return x == 0 || math.IsInf(x, -1) || (x < 0 && x == math.Floor(x))
}

func lgammaPole(x float64) bool {
	return x <= 0 && x == math.Floor(x) && !math.IsInf(x, 0)
}

func lgamma(x float64) float64 {
	r, _ := math.Lgamma(x)
	return r
}

func ulp(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.Abs(x)
	}
	x = math.Abs(x)
	if x == math.MaxFloat64 {
		return x - math.Nextafter(x, 0)
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

func logFn(args []numeric.Value) (numeric.Value, error) {
	x := args[0].Float64()
	if x <= 0 {
		return numeric.Value{}, domainError()
	}
	num := math.Log(x)
	if len(args) == 1 {
		return finish(num, x)
	}

	base := args[1].Float64()
	if base <= 0 {
		return numeric.Value{}, domainError()
	}
	den := math.Log(base)
	if den == 0 {
		return numeric.Value{}, numeric.Errorf(numeric.ErrZeroDivision, "float division by zero")
	}
	return finish(num/den, x, base)
}

func fma(args []numeric.Value) (numeric.Value, error) {
	x, y, z := args[0].Float64(), args[1].Float64(), args[2].Float64()
	return finish(math.FMA(x, y, z), x, y, z)
}

func hypot(args []numeric.Value) (numeric.Value, error) {
	in := make([]float64, len(args))
	var r float64
	for i, a := range args {
		in[i] = a.Float64()
		r = math.Hypot(r, in[i])
	}
	return finish(r, in...)
}

func ldexp(args []numeric.Value) (numeric.Value, error) {
	x := args[0].Float64()
	i, err := integer(args[1])
	if err != nil {
		return numeric.Value{}, err
	}
	// Exponents beyond the int range saturate; the result is 0 or inf either way.
	exp := int(max(min(i, math.MaxInt32), math.MinInt32))
	return finish(math.Ldexp(x, exp), x)
}

func rounding(fn func(float64) float64) Func {
	return func(args []numeric.Value) (numeric.Value, error) {
		if args[0].IsInt() {
			return args[0], nil
		}
		i, err := floatToInt(fn(args[0].Float64()))
		if err != nil {
			return numeric.Value{}, err
		}
		return numeric.Int(i), nil
	}
}

func predicate(fn func(float64) bool) Func {
	return func(args []numeric.Value) (numeric.Value, error) {
		return numeric.Bool(fn(args[0].Float64())), nil
	}
}

// floatToInt converts an already integral float to int64.
func floatToInt(f float64) (int64, error) {
	switch {
	case math.IsNaN(f):
		return 0, numeric.Errorf(numeric.ErrDomain, "cannot convert float NaN to integer")
	case math.IsInf(f, 0):
		return 0, numeric.Errorf(numeric.ErrOverflow, "cannot convert float infinity to integer")
	case f >= math.MaxInt64 || f < math.MinInt64:
		return 0, numeric.Errorf(numeric.ErrOverflow, "integer overflow")
	}
	return int64(f), nil
}

// integer returns v as an int64, rejecting floats like Python's
// __index__ protocol does.
func integer(v numeric.Value) (int64, error) {
	i, ok := v.Int64()
	if !ok {
		return 0, numeric.Errorf(numeric.ErrType, "'float' object cannot be interpreted as an integer")
	}
	return i, nil
}

func factorial(args []numeric.Value) (numeric.Value, error) {
	n, err := integer(args[0])
	if err != nil {
		return numeric.Value{}, err
	}
	if n < 0 {
		return numeric.Value{}, numeric.Errorf(numeric.ErrDomain, "factorial() not defined for negative values")
	}
	r := int64(1)
	for i := int64(2); i <= n; i++ {
		if r, err = numeric.MulInt(r, i); err != nil {
			return numeric.Value{}, err
		}
	}
	return numeric.Int(r), nil
}

func isqrt(args []numeric.Value) (numeric.Value, error) {
	n, err := integer(args[0])
	if err != nil {
		return numeric.Value{}, err
	}
	if n < 0 {
		return numeric.Value{}, numeric.Errorf(numeric.ErrDomain, "isqrt() argument must be nonnegative")
	}
	r := int64(math.Sqrt(float64(n)))
	// The float estimate can be off by one near the top of the int64 range.
	for r > 0 && (r > math.MaxInt64/r || r*r > n) {
		r--
	}
	for r+1 <= math.MaxInt64/(r+1) && (r+1)*(r+1) <= n {
		r++
	}
	return numeric.Int(r), nil
}

func gcd(args []numeric.Value) (numeric.Value, error) {
	var r int64
	for _, a := range args {
		n, err := integer(a)
		if err != nil {
			return numeric.Value{}, err
		}
		r = gcdInt(r, n)
	}
	if r < 0 {
		return numeric.Value{}, numeric.Errorf(numeric.ErrOverflow, "integer overflow")
	}
	return numeric.Int(r), nil
}

func lcm(args []numeric.Value) (numeric.Value, error) {
	r := int64(1)
	for _, a := range args {
		n, err := integer(a)
		if err != nil {
			return numeric.Value{}, err
		}
		if n == 0 || r == 0 {
			r = 0
			continue
		}
		g := gcdInt(r, n)
		if r, err = numeric.MulInt(r/g, n); err != nil {
			return numeric.Value{}, err
		}
		if r < 0 {
			if r == math.MinInt64 {
				return numeric.Value{}, numeric.Errorf(numeric.ErrOverflow, "integer overflow")
			}
			r = -r
		}
	}
	return numeric.Int(r), nil
}

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func comb(args []numeric.Value) (numeric.Value, error) {
	n, k, err := nk("comb", args)
	if err != nil {
		return numeric.Value{}, err
	}
	if k > n {
		return numeric.Int(0), nil
	}
	k = min(k, n-k)
	r := int64(1)
	for i := int64(1); i <= k; i++ {
		// r*(n-k+i) is divisible by i because r is C(n-k+i-1, i-1).
		g := gcdInt(r, i)
		step, err := numeric.MulInt(r/g, (n-k+i)/(i/g))
		if err != nil {
			return numeric.Value{}, err
		}
		r = step
	}
	return numeric.Int(r), nil
}

func perm(args []numeric.Value) (numeric.Value, error) {
	if len(args) == 1 {
		return factorial(args)
	}
	n, k, err := nk("perm", args)
	if err != nil {
		return numeric.Value{}, err
	}
	if k > n {
		return numeric.Int(0), nil
	}
	r := int64(1)
	for j := int64(0); j < k; j++ {
		if r, err = numeric.MulInt(r, n-j); err != nil {
			return numeric.Value{}, err
		}
	}
	return numeric.Int(r), nil
}

func nk(name string, args []numeric.Value) (int64, int64, error) {
	n, err := integer(args[0])
	if err != nil {
		return 0, 0, err
	}
	k, err := integer(args[1])
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		return 0, 0, numeric.Errorf(numeric.ErrDomain, fmt.Sprintf("%s(): n must be a non-negative integer", name))
	}
	if k < 0 {
		return 0, 0, numeric.Errorf(numeric.ErrDomain, fmt.Sprintf("%s(): k must be a non-negative integer", name))
	}
	return n, k, nil
}
