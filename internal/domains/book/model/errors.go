package model

import "errors"

var (
	// ErrInvalidBook is returned when the store rejects a book write
	// (constraint violation on a required field).
	ErrInvalidBook = errors.New("invalid book")
)
