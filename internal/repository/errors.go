package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an insert reuses an existing project ID
	ErrDuplicateID = errors.New("duplicate project id")

	// ErrIDSpaceExhausted is returned when no unused ID could be generated
	ErrIDSpaceExhausted = errors.New("could not generate an unused project id")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
