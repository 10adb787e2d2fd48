// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (e.g., duplicate contact request).
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyAccepted indicates an accept on an edge that is already ACCEPTED.
	ErrAlreadyAccepted = errors.New("already accepted")

	// ErrInvalidInput indicates missing or self-referential input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")
)
