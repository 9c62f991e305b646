// Copyright (c) 2026 Cinelog. All rights reserved.

package apperr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/apperr"
)

/*
TestConstructors verifies the status code taxonomy.
*/
func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *apperr.AppError
		want int
	}{
		{"missing_token", apperr.MissingToken("m"), http.StatusUnauthorized},
		{"invalid_token", apperr.InvalidToken("m"), http.StatusUnauthorized},
		{"expired_token", apperr.ExpiredToken("m"), http.StatusForbidden},
		{"unauthorized", apperr.Unauthorized("m"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("m"), http.StatusForbidden},
		{"not_found", apperr.NotFound("m"), http.StatusNotFound},
		{"conflict", apperr.Conflict("m"), http.StatusConflict},
		{"validation", apperr.Validation("m"), http.StatusUnprocessableEntity},
		{"rate_limited", apperr.RateLimited("m"), http.StatusTooManyRequests},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

/*
TestWireShape verifies the JSON contract and that internals never leak.
*/
func TestWireShape(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := apperr.Internal(cause)

	payload, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)

	var body map[string]any
	require.NoError(t, json.Unmarshal(payload, &body))

	assert.Equal(t, "An unexpected error occurred", body["message"])
	assert.Equal(t, float64(500), body["status_code"])

	// The cause stays server-side.
	assert.NotContains(t, string(payload), "connection refused")

	// Optional fields are omitted when empty.
	_, hasDescription := body["description"]
	assert.False(t, hasDescription)
	_, hasDetails := body["details"]
	assert.False(t, hasDetails)
}

/*
TestWithDescription verifies the copy-on-write description attachment.
*/
func TestWithDescription(t *testing.T) {
	base := apperr.Unauthorized("Invalid user credentials")
	described := base.WithDescription("Basic realm='Provide valid credentials'")

	assert.Empty(t, base.Description)
	assert.Equal(t, "Basic realm='Provide valid credentials'", described.Description)
	assert.Equal(t, base.Message, described.Message)
}

/*
TestUnwrap verifies errors.Is/As traversal through wrapped causes.
*/
func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("layer: %w", apperr.Internal(cause))

	assert.True(t, apperr.IsAppError(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusInternalServerError, ae.StatusCode)

	assert.False(t, apperr.IsAppError(errors.New("plain")))
	assert.Nil(t, apperr.As(errors.New("plain")))
}
