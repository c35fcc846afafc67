package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized access")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternal              = errors.New("internal server error")
	ErrSessionExpired        = errors.New("session expired or invalid")
	ErrDuplicateRegistration = errors.New("registration number already in use")
	ErrDuplicateDiskNumber   = errors.New("disk number already assigned to another vehicle")
	ErrDeleteFailed          = errors.New("delete affected no rows")
)

// validationError carries a user-facing message while still matching
// ErrInvalidInput through errors.Is.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return ErrInvalidInput }

// Validation builds an invalid-input error whose message is safe to show
// the user verbatim.
func Validation(msg string) error {
	return &validationError{msg: msg}
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
