package storage

import "errors"

// Storage errors.
var (
	// ErrNotFound is returned when a requested table does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when registering a table under a name that
	// already exists. Stores never replace a loaded table.
	ErrDuplicateKey = errors.New("duplicate key: table already registered")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
