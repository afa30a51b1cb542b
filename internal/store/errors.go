package store

import "errors"

// Sentinel errors shared by every store implementation. Workflows match on
// these with errors.Is and translate them to HTTP statuses.
var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)
