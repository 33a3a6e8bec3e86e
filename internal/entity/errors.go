package entity

import (
	"errors"
	"fmt"
)

var (
	// Event errors
	ErrEventNotFound = errors.New("event not found")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("user account is inactive")

	// Auth errors
	ErrNoToken      = errors.New("no authentication token provided")
	ErrInvalidToken = errors.New("invalid or expired token")

	// AI errors
	ErrAIUnavailable = errors.New("ai service is not configured")
	ErrContentPolicy = errors.New("request violates content policy")
)

// ValidationError reports malformed client input. It is surfaced as a
// 400 with its reason and is never retried.
type ValidationError struct {
	Reason string
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// QueryError wraps a store-level failure. The underlying detail is only
// exposed to clients in debug mode.
type QueryError struct {
	Op  string
	Err error
}

func NewQueryError(op string, err error) *QueryError {
	return &QueryError{Op: op, Err: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
