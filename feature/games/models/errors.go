package models

import "errors"

// Error kinds shared across the providers and the store. Callers match them with errors.Is.
var (
	// ErrTransport marks a failed call to a remote collaborator.
	ErrTransport = errors.New("transport error")
	// ErrDecode marks a remote payload that could not be decoded.
	ErrDecode = errors.New("decode error")
	// ErrInvalidIdentifier marks a game identifier that could not be parsed.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrStore marks a persistence failure.
	ErrStore = errors.New("store error")
)
