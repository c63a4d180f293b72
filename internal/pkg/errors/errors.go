package errors

import "errors"

// Common application errors
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for authentication failures (bad token, bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the role for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for invalid input shapes or identities.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for state conflicts, e.g. a duplicate unique name.
	ErrConflict = errors.New("resource state conflict")

	// ErrInvariant signals a postcondition failure inside the service layer.
	// It indicates a bug rather than bad input and must not be shown verbatim to clients.
	ErrInvariant = errors.New("internal invariant violated")
)
