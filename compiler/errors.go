package compiler

import (
	"errors"
	"fmt"
)

var (
	ErrContentNil       = errors.New("expression content is nil")
	ErrNilAllowList     = errors.New("allow-list cannot be nil")
	ErrInvalidLimit     = errors.New("limit must be positive")
	ErrNilExpressionAST = errors.New("parser returned no expression")
)

// SyntaxError reports a parse failure or a construct the calculator grammar
// does not accept.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line <= 0 {
		return e.Msg
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// NameError reports the first identifier that is not on the allow-list.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("use of '%s' is not allowed", e.Name)
}

// LimitError reports an expression that exceeds a configured bound.
type LimitError struct {
	What  string
	Got   int
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds limit of %d", e.What, e.Got, e.Limit)
}
