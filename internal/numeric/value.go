// Package numeric implements the value model of the evaluator: a number is
// either an int64 or a float64, and mixed operations promote to float.
package numeric

import (
	"math"
	"strconv"
	"strings"
)

// Value is an int64 or a float64. The zero Value is the float 0.
type Value struct {
	i     int64
	f     float64
	isInt bool
}

// Int returns an integer Value.
func Int(i int64) Value {
	return Value{i: i, isInt: true}
}

// Float returns a floating-point Value.
func Float(f float64) Value {
	return Value{f: f}
}

// Bool returns the integer 1 for true and 0 for false.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

func (v Value) IsInt() bool {
	return v.isInt
}

// Int64 returns the integer value and true when v is an integer.
func (v Value) Int64() (int64, bool) {
	return v.i, v.isInt
}

// Float64 returns v converted to a float64.
func (v Value) Float64() float64 {
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}

// IsFinite reports whether v is neither infinite nor NaN. Integers are always finite.
func (v Value) IsFinite() bool {
	if v.isInt {
		return true
	}
	return !math.IsInf(v.f, 0) && !math.IsNaN(v.f)
}

// TypeName returns "int" or "float".
func (v Value) TypeName() string {
	if v.isInt {
		return "int"
	}
	return "float"
}

// String formats integers in base 10 and floats the way a Python REPL prints
// them: fixed notation with a trailing ".0" between 1e-4 and 1e16, scientific
// notation outside that range.
func (v Value) String() string {
	if v.isInt {
		return strconv.FormatInt(v.i, 10)
	}
	return formatFloat(v.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
