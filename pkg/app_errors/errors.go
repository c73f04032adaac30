package apperrors

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrImageNotFound    = errors.New("event has no stored image")
	ErrInvalidInput     = errors.New("invalid input")
	ErrMissingAsanaAuth = errors.New("asana credentials not configured")
	ErrConfirmRequired  = errors.New("confirmation required")
)
