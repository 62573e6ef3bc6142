package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrUnsuccessful      = errors.New("request reported failure")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownStore      = errors.New("unknown store")
	ErrEmptyIngredients  = errors.New("meal has no ingredients")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrAlreadyExists     = errors.New("already exists")
)
