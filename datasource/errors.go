package datasource

import (
	"errors"
	"fmt"
)

// ErrorKind classifies API failures so callers can decide whether to
// retry, skip the city, or abort the whole cycle.
type ErrorKind int

const (
	ErrOther ErrorKind = iota
	ErrInvalidCredentials
	ErrNotFound
	ErrRateLimited
	ErrTimeout
	ErrConnection
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidCredentials:
		return "invalid_credentials"
	case ErrNotFound:
		return "not_found"
	case ErrRateLimited:
		return "rate_limited"
	case ErrTimeout:
		return "timeout"
	case ErrConnection:
		return "connection"
	default:
		return "other"
	}
}

// APIError is a typed failure from the weather API.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // 0 for transport failures
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather API error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("weather API error (%s): %s", e.Kind, e.Message)
}

// KindOf extracts the ErrorKind from an error chain. Errors that are not
// APIErrors classify as ErrOther.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrOther
}

// Retryable reports whether a failure is worth another immediate attempt.
// InvalidCredentials, NotFound and RateLimited short-circuit: retrying
// them cannot succeed within a cycle.
func Retryable(err error) bool {
	switch KindOf(err) {
	case ErrInvalidCredentials, ErrNotFound, ErrRateLimited:
		return false
	default:
		return true
	}
}
