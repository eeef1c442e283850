// Package errors provides the domain error type shared by services and handlers.
//
// Services return *Error values; the API layer renders them with the status from
// Code.HTTPStatus and the Details map as the field-keyed message body:
//
//	if year > now.Year() {
//	    return errors.FieldError("year", "must not be later than the current year")
//	}
//
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) && domainErr.Code == errors.CodeDuplicate {
//	    ...
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Is and As are re-exported so callers need only this package.
var (
	Is = errors.Is
	As = errors.As
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeValidation   Code = "VALIDATION"
	CodeDuplicate    Code = "DUPLICATE"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimited  Code = "RATE_LIMITED"
	CodeInternal     Code = "INTERNAL"
)

// NonFieldKey is the details key for errors that belong to the request as a whole.
const NonFieldKey = "non_field_errors"

// HTTPStatus returns the HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeValidation, CodeDuplicate:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// Field returns the message recorded for a field, if any.
func (e *Error) Field(name string) (string, bool) {
	msg, ok := e.Details[name]
	return msg, ok
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// with returns a copy of the sentinel carrying msg.
func (e *Error) with(msg string) *Error {
	return &Error{Code: e.Code, Message: msg}
}

// Sentinel errors for use with errors.Is(). The constructors below derive from them.
var (
	ErrNotFound     = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized = &Error{Code: CodeUnauthorized, Message: "authentication required"}
	ErrForbidden    = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation   = &Error{Code: CodeValidation, Message: "validation failed"}
	ErrDuplicate    = &Error{Code: CodeDuplicate, Message: "duplicate"}
	ErrConflict     = &Error{Code: CodeConflict, Message: "conflict"}
	ErrRateLimited  = &Error{Code: CodeRateLimited, Message: "too many requests"}
	ErrInternal     = &Error{Code: CodeInternal, Message: "internal error"}
)

// NotFound creates a not found error.
func NotFound(msg string) *Error { return ErrNotFound.with(msg) }

// Unauthorized creates an unauthenticated error.
func Unauthorized(msg string) *Error { return ErrUnauthorized.with(msg) }

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error { return ErrForbidden.with(msg) }

// ValidationWithDetails creates a validation error carrying field messages.
func ValidationWithDetails(msg string, details map[string]string) *Error {
	e := ErrValidation.with(msg)
	e.Details = details
	return e
}

// FieldError creates a validation error for a single field.
func FieldError(field, msg string) *Error {
	return ValidationWithDetails(ErrValidation.Message, map[string]string{field: msg})
}

// Duplicate creates a business-rule duplicate error. It renders as a 400 like a
// validation error but keeps its own code so clients can tell the two apart.
func Duplicate(msg string) *Error {
	e := ErrDuplicate.with(msg)
	e.Details = map[string]string{NonFieldKey: msg}
	return e
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error { return ErrConflict.with(msg) }

// RateLimited creates a rate limit error.
func RateLimited(msg string) *Error { return ErrRateLimited.with(msg) }

// Internal creates an internal error.
func Internal(msg string) *Error { return ErrInternal.with(msg) }
