package models

import "errors"

var (
	// ErrValidation is returned when a request is missing required fields or
	// carries values that fail a write-time invariant.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned for unknown ids and parent/child mismatches.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the requester's role or grants do not
	// permit the operation. Checked before any persistence call.
	ErrForbidden = errors.New("forbidden")
)
