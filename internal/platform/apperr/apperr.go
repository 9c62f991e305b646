// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Cinelog.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct carrying an HTTP status code and client-safe messages.
  - Taxonomy: Constructors cover the full authentication/authorization error
    surface (MissingToken, InvalidToken, ExpiredToken, Forbidden, ...).
  - Wire shape: Serialized as {"message": ..., "status_code": ..., "description"?}.

Every error that leaves the service layer should be wrapped as an [AppError] to
ensure consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Cinelog API.
//
// It carries an HTTP status code, a client-safe message, an optional
// human-oriented description, and an optional slice of field-level
// validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// StatusCode is the HTTP response status code, echoed in the body.
	StatusCode int `json:"status_code"`
	// Description optionally adds remediation guidance for the client.
	Description string `json:"description,omitempty"`
	// Details holds per-field validation errors for validation responses.
	Details []FieldError `json:"details,omitempty"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithDescription returns a copy of the error with the given description attached.
func (e *AppError) WithDescription(description string) *AppError {
	clone := *e
	clone.Description = description
	return &clone
}

// # Authentication Errors (401/403)

// MissingToken creates a 401 [AppError] for requests without a usable
// bearer token (absent or malformed Authorization header).
func MissingToken(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusUnauthorized,
	}
}

// InvalidToken creates a 401 [AppError] for tokens that fail signature or
// format verification, or whose subject cannot be resolved to an account.
func InvalidToken(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusUnauthorized,
	}
}

// ExpiredToken creates a 403 [AppError], deliberately distinct from the 401
// returned for missing or tampered tokens.
func ExpiredToken(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusForbidden,
	}
}

// Unauthorized creates a 401 [AppError] for failed credential checks.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] for authenticated but under-privileged
// callers, and for banned accounts at login time.
func Forbidden(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusForbidden,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] with the exact client-facing message.
//
// Example:
//
//	apperr.NotFound("Movie not found")
func NotFound(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusNotFound,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusConflict,
	}
}

// Validation creates a 422 [AppError] with optional per-field details.
func Validation(msg string, details ...FieldError) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return &AppError{
		Message:    msg,
		StatusCode: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Message:    "An unexpected error occurred",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
