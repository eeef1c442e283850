package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeDuplicate, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("title 42 not found")
	wrapped := fmt.Errorf("load title: %w", err)

	assert.True(t, Is(wrapped, ErrNotFound))
	assert.False(t, Is(wrapped, ErrForbidden))
}

func TestDuplicate_IsNotValidation(t *testing.T) {
	err := Duplicate("you have already reviewed this title")

	assert.True(t, Is(err, ErrDuplicate))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())

	msg, ok := err.Field(NonFieldKey)
	require.True(t, ok)
	assert.Equal(t, "you have already reviewed this title", msg)
}

func TestFieldError(t *testing.T) {
	err := FieldError("year", "must not be later than the current year")

	assert.Equal(t, CodeValidation, err.Code)
	msg, ok := err.Field("year")
	require.True(t, ok)
	assert.Contains(t, msg, "current year")
}

func TestWithCause_PreservesCodeAndUnwraps(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal("save failed").WithCause(cause)

	assert.Equal(t, CodeInternal, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "save failed: disk full", err.Error())
}

func TestConstructors_DeriveFromSentinels(t *testing.T) {
	tests := []struct {
		err      *Error
		sentinel *Error
	}{
		{NotFound("x"), ErrNotFound},
		{Unauthorized("x"), ErrUnauthorized},
		{Forbidden("x"), ErrForbidden},
		{FieldError("name", "x"), ErrValidation},
		{Duplicate("x"), ErrDuplicate},
		{Conflict("x"), ErrConflict},
		{RateLimited("x"), ErrRateLimited},
		{Internal("x"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.sentinel.Code), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.sentinel.HTTPStatus(), tt.err.HTTPStatus())
			assert.NotSame(t, tt.sentinel, tt.err)
		})
	}
}

func TestConstructors_DoNotMutateSentinels(t *testing.T) {
	_ = Duplicate("already reviewed")
	_ = FieldError("year", "too late")

	assert.Nil(t, ErrDuplicate.Details)
	assert.Nil(t, ErrValidation.Details)
	assert.Equal(t, "validation failed", FieldError("year", "too late").Message)
}
