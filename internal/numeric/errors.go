package numeric

import "errors"

var (
	ErrZeroDivision = errors.New("division by zero")
	ErrOverflow     = errors.New("numerical result out of range")
	ErrDomain       = errors.New("math domain error")
	ErrRange        = errors.New("math range error")
	ErrType         = errors.New("unsupported operand type")
)

// opError carries an operation-specific message while still matching its
// sentinel through errors.Is.
type opError struct {
	kind error
	msg  string
}

func (e *opError) Error() string { return e.msg }

func (e *opError) Unwrap() error { return e.kind }

// Errorf returns an error that reads as msg and unwraps to kind.
func Errorf(kind error, msg string) error {
	return &opError{kind: kind, msg: msg}
}
