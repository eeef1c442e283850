// Package response writes JSON bodies for routes served outside huma, such as
// the router's not-found and method-not-allowed handlers.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
)

// Body is the error shape shared with the huma error handler.
type Body struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes data as JSON with the given status code.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil && logger != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// Error writes a domain error with its status code. Anything that is not a
// domain error becomes a 500 without leaking its message.
func Error(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		if logger != nil {
			logger.Error("unhandled error", "error", err)
		}
		domainErr = domainerrors.Internal("internal server error")
	}

	JSON(w, domainErr.HTTPStatus(), Body{
		Code:    string(domainErr.Code),
		Message: domainErr.Message,
		Details: domainErr.Details,
	}, logger)
}
