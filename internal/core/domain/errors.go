package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDirectoryUnavailable indicates the directory provider failed.
	// The previous cached collection, if any, is retained unchanged.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrSessionClosed indicates an operation on a search session that
	// has already been discarded. Never surfaced to the user; callers
	// treat it as a no-op.
	ErrSessionClosed = errors.New("search session closed")
)
