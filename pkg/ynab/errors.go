package ynab

import (
	"errors"

	"github.com/eshaffer321/ynab-mcp-go/internal/types"
)

// Sentinel errors, aliased from the internal package so errors.Is works on
// values surfaced by the transport.
var (
	// ErrMissingToken is returned when no access token is configured
	ErrMissingToken = types.ErrMissingToken

	// ErrUnauthorized is returned when the token is rejected
	ErrUnauthorized = types.ErrUnauthorized

	// ErrRateLimited is returned when rate limited
	ErrRateLimited = types.ErrRateLimited

	// ErrTimeout is returned on timeout
	ErrTimeout = types.ErrTimeout

	// ErrNotFound is returned when resource not found
	ErrNotFound = types.ErrNotFound

	// ErrServerError is returned for server errors
	ErrServerError = types.ErrServerError
)

// Error is a structured API error carrying the YNAB error name, detail and
// HTTP status code.
type Error = types.Error

// IsNotFound checks if the error indicates a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthError checks if the error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrUnauthorized)
}

// IsRetryable checks if the error is worth retrying
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}
