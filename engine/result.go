package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/robbyt/go-safecalc/internal/numeric"
)

// FailureKind names the class of a failed evaluation.
type FailureKind string

const (
	SyntaxError     FailureKind = "SyntaxError"
	NameError       FailureKind = "NameError"
	EvaluationError FailureKind = "EvaluationError"
	EmptyInputError FailureKind = "EmptyInputError"
	LimitError      FailureKind = "LimitError"
)

// ErrorDisplay is what a calculator shows instead of a number.
const ErrorDisplay = "ERROR"

// Failure describes why an expression produced no number. It implements
// error, and unwraps to the sentinel matching its kind plus the underlying
// cause.
type Failure struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() []error {
	errs := []error{kindSentinel(f.Kind)}
	if f.cause != nil {
		errs = append(errs, f.cause)
	}
	return errs
}

func kindSentinel(k FailureKind) error {
	switch k {
	case SyntaxError:
		return ErrSyntax
	case NameError:
		return ErrName
	case EmptyInputError:
		return ErrEmptyInput
	case LimitError:
		return ErrLimit
	default:
		return ErrEvaluation
	}
}

// Result is the outcome of one evaluation: either a number or a Failure.
// The zero Result is the float 0.
type Result struct {
	value    numeric.Value
	failure  *Failure
	execTime time.Duration
}

// Number returns a successful floating-point Result.
func Number(v float64) Result {
	return Result{value: numeric.Float(v)}
}

// Integer returns a successful integer Result.
func Integer(i int64) Result {
	return Result{value: numeric.Int(i)}
}

// FromValue returns a successful Result holding v.
func FromValue(v numeric.Value) Result {
	return Result{value: v}
}

// Fail returns a failed Result.
func Fail(kind FailureKind, message string) Result {
	return Result{failure: &Failure{Kind: kind, Message: message}}
}

// FromError classifies err by the sentinel it wraps. The message is the text
// of the innermost cause so that parser and math diagnostics survive intact.
func FromError(err error) Result {
	if err == nil {
		return Result{}
	}

	var f *Failure
	if errors.As(err, &f) {
		return Result{failure: f}
	}

	kind := EvaluationError
	switch {
	case errors.Is(err, ErrEmptyInput):
		kind = EmptyInputError
	case errors.Is(err, ErrSyntax):
		kind = SyntaxError
	case errors.Is(err, ErrName):
		kind = NameError
	case errors.Is(err, ErrLimit):
		kind = LimitError
	}
	return Result{failure: &Failure{Kind: kind, Message: causeMessage(err), cause: err}}
}

// causeMessage strips the sentinel prefix added by "%w: %w" wrapping.
func causeMessage(err error) string {
	for {
		multi, ok := err.(interface{ Unwrap() []error })
		if !ok {
			return err.Error()
		}
		errs := multi.Unwrap()
		if len(errs) == 0 {
			return err.Error()
		}
		err = errs[len(errs)-1]
	}
}

// WithExecTime returns a copy of r that records how long evaluation took.
func (r Result) WithExecTime(d time.Duration) Result {
	r.execTime = d
	return r
}

// IsNumber reports whether the evaluation succeeded.
func (r Result) IsNumber() bool {
	return r.failure == nil
}

// Failure returns the failure, or nil for a number.
func (r Result) Failure() *Failure {
	return r.failure
}

// Err returns the failure as an error, or nil for a number.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	return r.failure
}

// Kind returns the failure kind, or "" for a number.
func (r Result) Kind() FailureKind {
	if r.failure == nil {
		return ""
	}
	return r.failure.Kind
}

// Value returns the number as a float64. It is 0 for a failure.
func (r Result) Value() float64 {
	if r.failure != nil {
		return 0
	}
	return r.value.Float64()
}

// Int returns the number and true when the result is an integer.
func (r Result) Int() (int64, bool) {
	if r.failure != nil {
		return 0, false
	}
	return r.value.Int64()
}

// Interface returns an int64, a float64, or nil for a failure.
func (r Result) Interface() any {
	if r.failure != nil {
		return nil
	}
	if i, ok := r.value.Int64(); ok {
		return i
	}
	return r.value.Float64()
}

// Inspect returns the number in source form, or "Kind: message".
func (r Result) Inspect() string {
	if r.failure != nil {
		return r.failure.Error()
	}
	return r.value.String()
}

// Display returns the text a calculator shows for r: the number, or
// ErrorDisplay for any failure.
func (r Result) Display() string {
	if r.failure != nil {
		return ErrorDisplay
	}
	return r.value.String()
}

func (r Result) ExecTime() time.Duration {
	return r.execTime
}

func (r Result) String() string {
	return fmt.Sprintf("Result{%s, ExecTime: %s}", r.Inspect(), r.execTime)
}
