// Copyright (c) 2026 Cinelog. All rights reserved.

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/ctxkey"
	"github.com/cinelog/cinelog/internal/platform/middleware"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// # Stubs

type stubVerifier struct {
	claims *sec.TokenClaims
	err    error
}

func (v *stubVerifier) Decode(string) (*sec.TokenClaims, error) {
	return v.claims, v.err
}

type stubResolver struct {
	user *auth.User
	err  error
}

func (r *stubResolver) FindByPublicID(context.Context, string) (*auth.User, error) {
	return r.user, r.err
}

// errorBody decodes the wire error shape written by the gate.
func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// # Authenticate

/*
TestAuthenticate_Outcomes walks the gate's decision table: missing bearer,
expired token, tampered token, vanished subject, and the happy path.
*/
func TestAuthenticate_Outcomes(t *testing.T) {
	member := &auth.User{ID: 1, PublicID: "marta-public-id", Username: "marta"}

	tests := []struct {
		name        string
		authHeader  string
		verifier    *stubVerifier
		resolver    *stubResolver
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "missing_bearer",
			authHeader:  "",
			verifier:    &stubVerifier{},
			resolver:    &stubResolver{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication token is missing",
		},
		{
			name:        "malformed_header",
			authHeader:  "Token abc",
			verifier:    &stubVerifier{},
			resolver:    &stubResolver{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication token is missing",
		},
		{
			name:        "expired_token",
			authHeader:  "Bearer stale",
			verifier:    &stubVerifier{err: sec.ErrTokenExpired},
			resolver:    &stubResolver{},
			wantStatus:  http.StatusForbidden,
			wantMessage: "Authentication token has expired",
		},
		{
			name:        "tampered_token",
			authHeader:  "Bearer forged",
			verifier:    &stubVerifier{err: sec.ErrTokenInvalid},
			resolver:    &stubResolver{},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication token is invalid",
		},
		{
			name:        "vanished_subject",
			authHeader:  "Bearer valid",
			verifier:    &stubVerifier{claims: &sec.TokenClaims{PublicID: "gone"}},
			resolver:    &stubResolver{user: nil},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication token is invalid",
		},
		{
			name:       "happy_path",
			authHeader: "Bearer valid",
			verifier:   &stubVerifier{claims: &sec.TokenClaims{PublicID: member.PublicID}},
			resolver:   &stubResolver{user: member},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var injected *auth.User
			next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				injected = middleware.GetUser(request.Context())
				writer.WriteHeader(http.StatusOK)
			})

			gate := middleware.Authenticate(tt.verifier, tt.resolver)(next)

			request := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				request.Header.Set("Authorization", tt.authHeader)
			}
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantMessage != "" {
				body := errorBody(t, recorder)
				assert.Equal(t, tt.wantMessage, body["message"])
				assert.Equal(t, float64(tt.wantStatus), body["status_code"])
				return
			}

			// Happy path: the resolved account reached the handler.
			require.NotNil(t, injected)
			assert.Equal(t, member.PublicID, injected.PublicID)
		})
	}
}

// # RequireAdmin

/*
TestRequireAdmin verifies the admin guard: anonymous → 401, member → 403,
admin → pass-through.
*/
func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name        string
		user        *auth.User
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "anonymous",
			user:        nil,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Authentication required",
		},
		{
			name:        "member",
			user:        &auth.User{ID: 1, Username: "marta"},
			wantStatus:  http.StatusForbidden,
			wantMessage: "Forbidden access for the current user",
		},
		{
			name:       "admin",
			user:       &auth.User{ID: 2, Username: "root", Admin: true},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.WriteHeader(http.StatusOK)
			})

			guard := middleware.RequireAdmin(next)

			request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.user != nil {
				ctx := context.WithValue(request.Context(), ctxkey.KeyUser, tt.user)
				request = request.WithContext(ctx)
			}
			recorder := httptest.NewRecorder()

			guard.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, errorBody(t, recorder)["message"])
			}
		})
	}
}

/*
TestRequireAuth verifies the plain authentication guard.
*/
func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	guard := middleware.RequireAuth(next)

	// 1. Anonymous request is rejected
	recorder := httptest.NewRecorder()
	guard.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Authenticated request passes
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(request.Context(), ctxkey.KeyUser, &auth.User{ID: 1})
	recorder = httptest.NewRecorder()
	guard.ServeHTTP(recorder, request.WithContext(ctx))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
