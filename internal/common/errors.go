package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound       = errors.New("not found")
	ErrorDuplicateEmail = errors.New("email already in use")

	// service specific errors
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorForbidden        = errors.New("forbidden")
	ErrorValidation       = errors.New("validation error")
	ErrorWrongCredentials = errors.New("wrong credentials")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError carries a user-facing message for a rejected input.
// It always matches ErrorValidation and unwraps to Err when set, so a
// duplicate email can be detected with either sentinel.
type ValidationError struct {
	Message string
	Err     error
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
