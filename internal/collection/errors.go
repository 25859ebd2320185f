package collection

import "errors"

var (
	// ErrConfiguration is returned by New when a required field is missing.
	ErrConfiguration = errors.New("invalid collection configuration")
	// ErrValidation is returned by the by-id operations for an empty id.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned by RemoveByID for an id that is not held.
	ErrNotFound = errors.New("entity not found")
	// ErrProtocol is reported for live frames that cannot be understood.
	ErrProtocol = errors.New("malformed live event")
	// ErrClosed is returned by operations issued after Close.
	ErrClosed = errors.New("collection closed")
)
