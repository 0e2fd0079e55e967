// AngelaMos | 2026
// errors_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAppErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"reference", fmt.Errorf("product 5 does not exist: %w", ErrInvalidReference), http.StatusBadRequest, CodeReference},
		{"format", fmt.Errorf("bad date: %w", ErrInvalidFormat), http.StatusBadRequest, CodeFormat},
		{"validation", fmt.Errorf("bad status: %w", ErrInvalidInput), http.StatusBadRequest, CodeValidation},
		{"not found", fmt.Errorf("order 3: %w", ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"conflict", fmt.Errorf("in use: %w", ErrConflict), http.StatusConflict, CodeConflict},
		{"duplicate", fmt.Errorf("email: %w", ErrDuplicateKey), http.StatusConflict, CodeDuplicate},
		{"token expired", fmt.Errorf("verify: %w", ErrTokenExpired), http.StatusUnauthorized, CodeTokenExpired},
		{"forbidden", fmt.Errorf("delete: %w", ErrForbidden), http.StatusForbidden, CodeForbidden},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := ToAppError(tt.err)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestToAppErrorKeepsAppError(t *testing.T) {
	original := NotFoundError("order")
	wrapped := fmt.Errorf("handler: %w", original)

	assert.Same(t, original, ToAppError(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestJSONErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONError(rec, errors.New("dial tcp 10.0.0.3:5432: connection refused"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal server error", body.Error)
	assert.NotContains(t, rec.Body.String(), "5432")
}

func TestJSONErrorReferenceMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	JSONError(rec, fmt.Errorf("product 5 does not exist: %w", ErrInvalidReference))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"product 5 does not exist: invalid reference"`)
}
