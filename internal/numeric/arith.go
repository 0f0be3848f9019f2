package numeric

import (
	"fmt"
	"math"
)

// Add returns a + b.
func Add(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		if (y > 0 && x > math.MaxInt64-y) || (y < 0 && x < math.MinInt64-y) {
			return Value{}, Errorf(ErrOverflow, "integer overflow in addition")
		}
		return Int(x + y), nil
	}
	return checkedFloat(a, b, a.Float64()+b.Float64())
}

// Sub returns a - b.
func Sub(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		if (y < 0 && x > math.MaxInt64+y) || (y > 0 && x < math.MinInt64+y) {
			return Value{}, Errorf(ErrOverflow, "integer overflow in subtraction")
		}
		return Int(x - y), nil
	}
	return checkedFloat(a, b, a.Float64()-b.Float64())
}

// Mul returns a * b.
func Mul(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		p, err := MulInt(x, y)
		if err != nil {
			return Value{}, err
		}
		return Int(p), nil
	}
	return checkedFloat(a, b, a.Float64()*b.Float64())
}

// MulInt multiplies two int64 values, reporting overflow.
func MulInt(x, y int64) (int64, error) {
	if x == 0 || y == 0 {
		return 0, nil
	}
	p := x * y
	if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, Errorf(ErrOverflow, "integer overflow in multiplication")
	}
	return p, nil
}

// Div is true division: the result is always a float.
func Div(a, b Value) (Value, error) {
	if b.Float64() == 0 {
		if a.IsInt() && b.IsInt() {
			return Value{}, Errorf(ErrZeroDivision, "division by zero")
		}
		return Value{}, Errorf(ErrZeroDivision, "float division by zero")
	}
	return checkedFloat(a, b, a.Float64()/b.Float64())
}

// FloorDiv returns the floor of a / b. Integer operands give an integer.
func FloorDiv(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		if y == 0 {
			return Value{}, Errorf(ErrZeroDivision, "integer division or modulo by zero")
		}
		if x == math.MinInt64 && y == -1 {
			return Value{}, Errorf(ErrOverflow, "integer overflow in floor division")
		}
		q := x / y
		if x%y != 0 && (x < 0) != (y < 0) {
			q--
		}
		return Int(q), nil
	}

	x, y := a.Float64(), b.Float64()
	if y == 0 {
		return Value{}, Errorf(ErrZeroDivision, "float floor division by zero")
	}
	div, _ := floatDivMod(x, y)
	return Float(div), nil
}

// Mod returns a modulo b with the sign of b.
func Mod(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok {
		if y == 0 {
			return Value{}, Errorf(ErrZeroDivision, "integer division or modulo by zero")
		}
		if y == -1 {
			return Int(0), nil
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return Int(r), nil
	}

	x, y := a.Float64(), b.Float64()
	if y == 0 {
		return Value{}, Errorf(ErrZeroDivision, "float modulo by zero")
	}
	_, mod := floatDivMod(x, y)
	return Float(mod), nil
}

// Pow returns a ** b. Two integers with a non-negative exponent give an
// integer; every other combination is computed in float.
func Pow(a, b Value) (Value, error) {
	if x, y, ok := ints(a, b); ok && y >= 0 {
		p, err := powInt(x, y)
		if err != nil {
			return Value{}, err
		}
		return Int(p), nil
	}

	x, y := a.Float64(), b.Float64()
	if x == 0 && y < 0 {
		return Value{}, Errorf(ErrZeroDivision, "0.0 cannot be raised to a negative power")
	}
	r := math.Pow(x, y)
	switch {
	case math.IsNaN(r) && !math.IsNaN(x) && !math.IsNaN(y):
		return Value{}, Errorf(ErrDomain, "math domain error")
	case math.IsInf(r, 0) && a.IsFinite() && b.IsFinite():
		return Value{}, Errorf(ErrRange, "math range error")
	}
	return Float(r), nil
}

// powInt is exponentiation by squaring with overflow checks. y must not be
// negative.
func powInt(x, y int64) (int64, error) {
	r := int64(1)
	for {
		if y&1 == 1 {
			p, err := MulInt(r, x)
			if err != nil {
				return 0, Errorf(ErrOverflow, "integer overflow in exponentiation")
			}
			r = p
		}
		y >>= 1
		if y == 0 {
			return r, nil
		}
		sq, err := MulInt(x, x)
		if err != nil {
			return 0, Errorf(ErrOverflow, "integer overflow in exponentiation")
		}
		x = sq
	}
}

// Neg returns -a.
func Neg(a Value) (Value, error) {
	if x, ok := a.Int64(); ok {
		if x == math.MinInt64 {
			return Value{}, Errorf(ErrOverflow, "integer overflow in negation")
		}
		return Int(-x), nil
	}
	return Float(-a.f), nil
}

// Pos returns a unchanged.
func Pos(a Value) (Value, error) {
	return a, nil
}

// floatDivMod mirrors CPython's float_divmod so that floor division and
// modulo agree on sign and rounding.
func floatDivMod(x, y float64) (float64, float64) {
	mod := math.Mod(x, y)
	div := (x - mod) / y
	if mod != 0 {
		if (y < 0) != (mod < 0) {
			mod += y
			div -= 1.0
		}
	} else {
		mod = math.Copysign(0, y)
	}

	var floordiv float64
	if div != 0 {
		floordiv = math.Floor(div)
		if div-floordiv > 0.5 {
			floordiv += 1.0
		}
	} else {
		floordiv = math.Copysign(0, x/y)
	}
	return floordiv, mod
}

func ints(a, b Value) (int64, int64, bool) {
	if a.isInt && b.isInt {
		return a.i, b.i, true
	}
	return 0, 0, false
}

// checkedFloat rejects an infinite result computed from finite operands.
func checkedFloat(a, b Value, r float64) (Value, error) {
	if math.IsInf(r, 0) && a.IsFinite() && b.IsFinite() {
		return Value{}, Errorf(ErrOverflow, fmt.Sprintf("float overflow: %s", Float(r)))
	}
	return Float(r), nil
}
