package board_errors

import "errors"

// Common errors
var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)

// Upload taxonomy. The first three are user-correctable validation
// failures; the rest are operational.
var (
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrTooLarge             = errors.New("file too large")
	ErrTypeMismatch         = errors.New("content type does not match extension")
	ErrSecurityViolation    = errors.New("file path outside upload root")
	ErrIOFailure            = errors.New("file i/o failure")
	ErrPartialFailure       = errors.New("file removed but metadata remains")
)

// IsValidation reports whether err is one of the per-file validation
// rejections that an upload batch recovers from locally.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnsupportedExtension) ||
		errors.Is(err, ErrTooLarge) ||
		errors.Is(err, ErrTypeMismatch)
}
