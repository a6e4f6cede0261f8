package store

import "errors"

var (
	// ErrStoreClosed indicates that the store was used after Close
	ErrStoreClosed = errors.New("storage is closed")

	// ErrInvalidEntry indicates that an entry failed validation on write
	ErrInvalidEntry = errors.New("invalid entry")
)
