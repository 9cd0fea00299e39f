package usecase

import "errors"

// Sentinel errors for use case layer. The HTTP controller maps these
// to status codes via errutil.StatusCode.
var (
	// Authentication errors
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// Access control errors
	ErrNotAuthorized = errors.New("not authorized")

	// Not found errors
	ErrNotFound = errors.New("not found")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// State errors
	ErrConflict            = errors.New("conflict with existing record")
	ErrCannotDeleteDefault = errors.New("default rate cannot be deleted")
	ErrCannotCancelPast    = errors.New("meeting has already started")
)
