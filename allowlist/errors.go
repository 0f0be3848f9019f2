package allowlist

import "errors"

var (
	ErrNilEntry      = errors.New("allow-list entry is nil")
	ErrInvalidName   = errors.New("allow-list name is not a valid identifier")
	ErrReservedName  = errors.New("allow-list name uses the reserved prefix")
	ErrDuplicateName = errors.New("allow-list name is declared twice")
	ErrInvalidArity  = errors.New("allow-list function has an invalid arity")
)
