package services

import "errors"

// Sentinel errors for failures rejected locally, before any network call.
// Validation failures leave selection and staging untouched.
var (
	ErrEmptySelection  = errors.New("empty selection")
	ErrInvalidTag      = errors.New("invalid tag")
	ErrNoAccount       = errors.New("no account specified")
	ErrTooManyMessages = errors.New("too many messages")
	ErrInvalidPage     = errors.New("invalid page parameters")
)

// IsValidationError reports whether err was raised by local validation. Such
// errors are surfaced inline; everything else is a transport/backend failure
// that is retryable after the user is notified.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrInvalidTag) ||
		errors.Is(err, ErrNoAccount) ||
		errors.Is(err, ErrTooManyMessages) ||
		errors.Is(err, ErrInvalidPage)
}
