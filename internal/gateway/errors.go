package gateway

import (
	"errors"
	"fmt"
)

// ServiceError is a hosted platform failure translated into a form the
// caller can show or log. Hint carries the user-facing recovery advice.
type ServiceError struct {
	// Code is the raw platform error code (PostgreSQL or PostgREST).
	Code string
	// Message describes the failure.
	Message string
	// Hint is recovery advice suitable for surfacing to the user.
	Hint string
	// IsNetworkError marks failures caused by connectivity rather than the
	// platform rejecting the request. Network failures are retryable.
	IsNetworkError bool
}

func (e *ServiceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// Retryable reports whether retrying the same request can succeed.
func (e *ServiceError) Retryable() bool {
	return e.IsNetworkError
}

// ValidationError marks a response payload that does not match the expected
// schema. Retrying cannot fix it, so the sync run reports it and moves on.
type ValidationError struct {
	// Field names the offending payload field, when known.
	Field string
	// Reason describes the mismatch.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid response payload: field %q %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid response payload: %s", e.Reason)
}

// IsRetryable reports whether err is worth retrying. Validation errors and
// non-network service errors are permanent.
func IsRetryable(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}
