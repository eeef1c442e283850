package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string            `json:"code" doc:"Machine-readable error code"`
	Message string            `json:"message" doc:"Human-readable error message"`
	Details map[string]string `json:"details,omitempty" doc:"Messages keyed by field name"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
//
// Request schema failures that huma reports itself (wrong JSON types, unknown
// properties, bad query values) are rendered as VALIDATION errors keyed by field
// so that clients see a single error shape.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		details := map[string]string{}

		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Code:    statusToCode(storeErr.HTTPCode()),
					Message: storeErr.Message,
				}
			}

			var detail *huma.ErrorDetail
			if errors.As(err, &detail) {
				field := fieldFromLocation(detail.Location)
				if _, seen := details[field]; !seen {
					details[field] = detail.Message
				}
			}
		}

		if status == http.StatusBadRequest || status == http.StatusUnprocessableEntity {
			if len(details) == 0 {
				details[domainerrors.NonFieldKey] = message
			}
			return &APIError{
				status:  http.StatusBadRequest,
				Code:    string(domainerrors.CodeValidation),
				Message: "validation failed",
				Details: details,
			}
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
	}
}

// fieldFromLocation turns a huma location such as "body.year" or "query.limit"
// into the bare field name.
func fieldFromLocation(location string) string {
	_, field, ok := strings.Cut(location, ".")
	if !ok || field == "" {
		return domainerrors.NonFieldKey
	}
	if i := strings.IndexAny(field, ".["); i > 0 {
		field = field[:i]
	}
	return field
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(domainerrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(domainerrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(domainerrors.CodeForbidden)
	case http.StatusNotFound:
		return string(domainerrors.CodeNotFound)
	case http.StatusConflict:
		return string(domainerrors.CodeConflict)
	case http.StatusTooManyRequests:
		return string(domainerrors.CodeRateLimited)
	default:
		return string(domainerrors.CodeInternal)
	}
}
