package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("member", nil), "NOT_FOUND", http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no session"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("admin only"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("busy", nil), "CONFLICT", http.StatusConflict},
		{"unavailable", NewUnavailable("down"), "UNAVAILABLE", http.StatusServiceUnavailable},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *DomainError
			require.True(t, errors.As(tc.err, &domainErr))
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}

func TestToDomainErrorWrapsUnknownErrors(t *testing.T) {
	raw := errors.New("connection refused")

	domainErr := ToDomainError(raw)
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, raw)
}

func TestToDomainErrorPreservesDomainErrors(t *testing.T) {
	original := NewNotFound("member", map[string]any{"id": "m1"})
	wrapped := fmt.Errorf("handling request: %w", original)

	domainErr := ToDomainError(wrapped)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "m1", domainErr.Details["id"])
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
