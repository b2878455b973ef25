package domain

import "errors"

var (
	// ErrNotFound is returned when the requested document or session does not exist.
	// Keeping this sentinel in domain allows adapters to map it consistently to 404/NOT_FOUND.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateKey signals a unique-constraint violation on save.
	ErrDuplicateKey = errors.New("unique constraint violated")
	// ErrConflict signals an optimistic-concurrency failure: the supplied _rev
	// no longer matches the stored revision.
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
