package domain

import "errors"

// Error taxonomy for store operations. Auth and validation errors are
// raised before any network call; anything else wraps the transport error.
var (
	ErrAuthRequired = errors.New("authentication required")
	ErrValidation   = errors.New("validation failed")
	ErrNoVariant    = errors.New("no variant available")
)
