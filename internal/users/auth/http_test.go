// Copyright (c) 2026 Cinelog. All rights reserved.

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/users/auth"
)

// newTestHandler wires the handler over the in-memory fakes and mounts its
// routes on a test server.
func newTestHandler(t *testing.T) (*httptest.Server, *fakeUserRepo) {
	t.Helper()

	service, users, _, tokens := newTestService(t)
	handler := auth.NewHandler(service, tokens)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	return server, users
}

func doRequest(t *testing.T, method, url string, body string, configure func(*http.Request)) (*http.Response, map[string]any) {
	t.Helper()

	request, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if configure != nil {
		configure(request)
	}

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	t.Cleanup(func() { response.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(response.Body).Decode(&decoded))
	return response, decoded
}

/*
TestLoginEndpoint_Lifecycle drives the full session lifecycle over HTTP:
login, idempotent re-login, logout, and the benign repeated logout.
*/
func TestLoginEndpoint_Lifecycle(t *testing.T) {
	server, users := newTestHandler(t)
	seedUser(t, users, "marta", "secret", nil)

	// 1. Login with Basic credentials
	response, body := doRequest(t, http.MethodGet, server.URL+"/login", "", func(r *http.Request) {
		r.SetBasicAuth("marta", "secret")
	})
	require.Equal(t, http.StatusOK, response.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// 2. Re-login returns the identical token
	_, body = doRequest(t, http.MethodGet, server.URL+"/login", "", func(r *http.Request) {
		r.SetBasicAuth("marta", "secret")
	})
	assert.Equal(t, token, body["token"])

	// 3. Logout terminates the session
	response, body = doRequest(t, http.MethodGet, server.URL+"/logout", "", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "User logged out", body["message"])

	// 4. Logging out the same token again is benign
	response, body = doRequest(t, http.MethodGet, server.URL+"/logout", "", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, "No user logged", body["message"])

	// 5. A fresh login now mints a different token
	_, body = doRequest(t, http.MethodGet, server.URL+"/login", "", func(r *http.Request) {
		r.SetBasicAuth("marta", "secret")
	})
	assert.NotEqual(t, token, body["token"])
}

/*
TestLoginEndpoint_Failures verifies the login failure responses.
*/
func TestLoginEndpoint_Failures(t *testing.T) {
	server, users := newTestHandler(t)
	seedUser(t, users, "marta", "secret", nil)
	seedUser(t, users, "troll", "secret", func(u *auth.User) { u.Banned = true })

	tests := []struct {
		name        string
		configure   func(*http.Request)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "no_basic_header",
			configure:   nil,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization request",
		},
		{
			name:        "blank_credentials",
			configure:   func(r *http.Request) { r.SetBasicAuth("", "") },
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid authorization request",
		},
		{
			name:        "wrong_password",
			configure:   func(r *http.Request) { r.SetBasicAuth("marta", "nope") },
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid user credentials",
		},
		{
			name:        "banned_account",
			configure:   func(r *http.Request) { r.SetBasicAuth("troll", "secret") },
			wantStatus:  http.StatusForbidden,
			wantMessage: "User is banned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, body := doRequest(t, http.MethodGet, server.URL+"/login", "", tt.configure)

			assert.Equal(t, tt.wantStatus, response.StatusCode)
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.Equal(t, float64(tt.wantStatus), body["status_code"])
		})
	}
}

/*
TestRegisterEndpoint verifies registration responses, including the
admin-flag handling on the public route.
*/
func TestRegisterEndpoint(t *testing.T) {
	server, users := newTestHandler(t)
	seedUser(t, users, "root", "secret", func(u *auth.User) { u.Admin = true })

	// 1. Plain registration
	response, body := doRequest(t, http.MethodPost, server.URL+"/register",
		`{"username":"joao","password":"secret","display_name":"João"}`, nil)
	require.Equal(t, http.StatusCreated, response.StatusCode)
	assert.Equal(t, "User registered", body["message"])

	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "joao", user["username"])
	assert.Equal(t, "João", user["display_name"])
	assert.NotEmpty(t, user["public_id"])

	// The password hash never appears on the wire.
	_, leaked := user["password"]
	assert.False(t, leaked)

	// 2. Missing data
	response, body = doRequest(t, http.MethodPost, server.URL+"/register",
		`{"username":"incomplete"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)
	assert.Equal(t, "Missing user data", body["message"])

	// 3. Anonymous caller cannot mint an admin; the flag is silently dropped
	_, _ = doRequest(t, http.MethodPost, server.URL+"/register",
		`{"username":"sneaky","password":"secret","admin":true}`, nil)
	sneaky, err := users.FindByUsername(context.Background(), "sneaky")
	require.NoError(t, err)
	assert.False(t, sneaky.Admin)

	// 4. An admin bearer on the request authorizes the flag
	adminToken := loginToken(t, server.URL, "root", "secret")
	_, _ = doRequest(t, http.MethodPost, server.URL+"/register",
		`{"username":"deputy","password":"secret","admin":true}`, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+adminToken)
		})
	deputy, err := users.FindByUsername(context.Background(), "deputy")
	require.NoError(t, err)
	assert.True(t, deputy.Admin)

	// 5. Duplicate username surfaces as a 500
	response, _ = doRequest(t, http.MethodPost, server.URL+"/register",
		`{"username":"joao","password":"secret"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
}

/*
TestLogoutEndpoint_MissingToken verifies that logout without a bearer is a
401, unlike an unknown token which is a benign 200.
*/
func TestLogoutEndpoint_MissingToken(t *testing.T) {
	server, _ := newTestHandler(t)

	response, body := doRequest(t, http.MethodGet, server.URL+"/logout", "", nil)

	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
	assert.Equal(t, "Authentication token is missing", body["message"])
}

// loginToken logs a seeded user in and returns the issued token.
func loginToken(t *testing.T, baseURL, username, password string) string {
	t.Helper()

	_, body := doRequest(t, http.MethodGet, baseURL+"/login", "", func(r *http.Request) {
		r.SetBasicAuth(username, password)
	})
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
