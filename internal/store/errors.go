package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error carrying the HTTP status it maps to.
type Error struct {
	Code    int      // HTTP status code
	Message string   // User-facing message
	Fields  []string // Columns named by a unique violation
	Err     error    // Underlying driver error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches store errors by status code so that errors.Is(err, ErrNotFound) holds
// for every variant built from a sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.Code }

// WithMessage returns a copy of the error with msg as its message.
func (e *Error) WithMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

// WithFields returns a copy of the error naming the offending columns.
func (e *Error) WithFields(fields ...string) *Error {
	c := *e
	c.Fields = fields
	return &c
}

// WithCause returns a copy of the error wrapping err.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = &Error{Code: http.StatusNotFound, Message: "resource not found"}

// ErrAlreadyExists is returned when a write violates a unique index. Fields names
// the columns involved.
var ErrAlreadyExists = &Error{Code: http.StatusConflict, Message: "resource already exists"}
