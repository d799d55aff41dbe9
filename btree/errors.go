package btree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration, e.g. a minimum
	// degree below 2. It is the only error tree construction can fail with.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrInvariantViolation is reported by Check for a structurally broken tree.
	ErrInvariantViolation = errors.New("btree: invariant violation")
	// ErrIllegalArguments flags nil or otherwise unusable parameters.
	ErrIllegalArguments = errors.New("btree: illegal arguments")
	// ErrInvalidCursor signals use of a cursor which is not positioned on an entry.
	ErrInvalidCursor = errors.New("btree: cursor not positioned")
)
