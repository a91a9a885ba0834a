package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the lookup. Malformed
	// identifiers collapse to the same error so callers see a single outcome.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate")
)
