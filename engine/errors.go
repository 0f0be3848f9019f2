package engine

import "errors"

// Sentinels that classify why an expression produced no number. Compiler and
// evaluator errors wrap exactly one of these.
var (
	ErrEmptyInput = errors.New("empty input")
	ErrSyntax     = errors.New("syntax error")
	ErrName       = errors.New("name not allowed")
	ErrEvaluation = errors.New("evaluation error")
	ErrLimit      = errors.New("resource limit exceeded")
)
