package store

import "errors"

// Common store errors
var (
	// ErrNotFound is returned when a document is absent or not owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("duplicate key")
)
