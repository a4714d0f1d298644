package store

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an insert violates the unique
	// email constraint on users.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the
	// account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
