// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Kanoon.

It provides a rich error type that bridges the gap between low-level domain/storage
errors and high-level HTTP responses.

Taxonomy:

  - AuthenticationFailure: missing, invalid or expired token, bad basic credentials (401).
  - AccountNotApproved: a valid identity whose approval flag is unset (401).
  - AuthorizationFailure: the role set does not satisfy the policy (403).
  - OwnershipViolation: a self-scoped resource owned by someone else (403).
  - ValidationFailure: malformed or missing input fields (400).
  - IntegrityConflict: uniqueness violation (409).
  - NotFound: the referenced entity does not exist (404).
  - StorageFailure: underlying transaction error, rolled back (500).

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotApproved        = "ACCOUNT_NOT_APPROVED"
	CodeForbidden          = "FORBIDDEN"
	CodeOwnershipViolation = "OWNERSHIP_VIOLATION"
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
	CodeStorage            = "STORAGE_FAILURE"
	CodeUnavailable        = "SERVICE_UNAVAILABLE"
)

// ForbiddenMessage is the fixed message returned for every role or ownership denial.
const ForbiddenMessage = "Unauthorized Access"

// AppError is the canonical error type for the Kanoon API.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"-"`
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

// Is matches two AppErrors by code so sentinel comparisons survive wrapping.
func (e *AppError) Is(target error) bool {
	var other *AppError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// WithCause returns a copy of e carrying cause for server-side logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// FieldMap groups Details by field name, preserving message order.
func (e *AppError) FieldMap() map[string][]string {
	if len(e.Details) == 0 {
		return nil
	}
	fields := make(map[string][]string, len(e.Details))
	for _, detail := range e.Details {
		fields[detail.Field] = append(fields[detail.Field], detail.Message)
	}
	return fields
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Camp") // Returns "Camp not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NotApproved creates a 401 [AppError] for authenticated identities that
// an admin has not accepted yet.
func NotApproved() *AppError {
	return &AppError{
		Code:       CodeNotApproved,
		Message:    "Account is waiting for approval",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError] with the fixed denial message.
func Forbidden() *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    ForbiddenMessage,
		HTTPStatus: http.StatusForbidden,
	}
}

// OwnershipViolation creates a 403 [AppError] for self-scoped resources
// that belong to another identity.
func OwnershipViolation() *AppError {
	return &AppError{
		Code:       CodeOwnershipViolation,
		Message:    ForbiddenMessage,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// StorageFailure creates a 500 [AppError] for a failed database statement.
// The transaction is rolled back by the caller; the driver's message (never the
// query text) is surfaced so the client can tell what went wrong.
func StorageFailure(detail string, cause error) *AppError {
	msg := "Storage failure"
	if detail != "" {
		msg += ": " + detail
	}
	return &AppError{
		Code:       CodeStorage,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ServiceUnavailable creates a 503 [AppError] for missing backing services.
func ServiceUnavailable(msg string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    msg,
		HTTPStatus: http.StatusServiceUnavailable,
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

// HasCode reports whether err carries an [*AppError] with the given code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
