package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/yamdb/yamdb-server/internal/errors"
	"github.com/yamdb/yamdb-server/internal/store"
)

func TestFieldFromLocation(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"body.year", "year"},
		{"query.limit", "limit"},
		{"body.genre[0]", "genre"},
		{"body.category.slug", "category"},
		{"body", "non_field_errors"},
		{"", "non_field_errors"},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldFromLocation(tt.location))
		})
	}
}

func TestNewError_Mapping(t *testing.T) {
	RegisterErrorHandler()

	t.Run("domain error keeps its status", func(t *testing.T) {
		err := huma.NewError(http.StatusInternalServerError, "boom", domainerrors.Forbidden("nope"))
		assert.Equal(t, http.StatusForbidden, err.GetStatus())
	})

	t.Run("store not found", func(t *testing.T) {
		err := huma.NewError(http.StatusInternalServerError, "boom", store.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, err.GetStatus())
	})

	t.Run("store error keeps its status and message", func(t *testing.T) {
		err := huma.NewError(http.StatusInternalServerError, "boom",
			store.ErrAlreadyExists.WithFields("slug"))
		require.Equal(t, http.StatusConflict, err.GetStatus())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "CONFLICT", apiErr.Code)
		assert.Equal(t, "resource already exists", apiErr.Message)
	})

	t.Run("schema errors become field validation", func(t *testing.T) {
		err := huma.NewError(http.StatusUnprocessableEntity, "validation failed",
			&huma.ErrorDetail{Location: "body.year", Message: "expected integer"})
		require.Equal(t, http.StatusBadRequest, err.GetStatus())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "VALIDATION", apiErr.Code)
		assert.Equal(t, "expected integer", apiErr.Details["year"])
	})

	t.Run("bad request without details", func(t *testing.T) {
		err := huma.NewError(http.StatusBadRequest, "unable to parse body")

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "unable to parse body", apiErr.Details["non_field_errors"])
	})

	t.Run("other status", func(t *testing.T) {
		err := huma.NewError(http.StatusServiceUnavailable, "down")
		assert.Equal(t, http.StatusServiceUnavailable, err.GetStatus())
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "INTERNAL", apiErr.Code)
	})
}
