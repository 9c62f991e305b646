// Copyright (c) 2026 Cinelog. All rights reserved.

package sec_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/platform/sec"
)

const testSecret = "unit-test-secret-key"

/*
TestTokenService_RoundTrip verifies that an issued token decodes back to
the same subject.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService(testSecret, "cinelog", time.Hour)

	token, err := service.Issue("user-public-id")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "user-public-id", claims.Subject)
	assert.Equal(t, "user-public-id", claims.PublicID)
	assert.Equal(t, "cinelog", claims.Issuer)
}

/*
TestTokenService_Expired verifies that a stale token is reported as
expired, not merely invalid.
*/
func TestTokenService_Expired(t *testing.T) {
	service := sec.NewTokenService(testSecret, "cinelog", -time.Minute)

	token, err := service.Issue("user-public-id")
	require.NoError(t, err)

	claims, err := service.Decode(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Invalid verifies rejection of tampered and garbage input.
*/
func TestTokenService_Invalid(t *testing.T) {
	service := sec.NewTokenService(testSecret, "cinelog", time.Hour)

	token, err := service.Issue("user-public-id")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"tampered_signature", token[:len(token)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Decode(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}

/*
TestTokenService_WrongSecret verifies that a token signed by one service is
rejected by a service holding a different secret.
*/
func TestTokenService_WrongSecret(t *testing.T) {
	issuer := sec.NewTokenService(testSecret, "cinelog", time.Hour)
	verifier := sec.NewTokenService("a-different-secret", "cinelog", time.Hour)

	token, err := issuer.Issue("user-public-id")
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestPasswordHash verifies the bcrypt hash/check pair.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// Hash must not be the plain text
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, sec.CheckPasswordHash("s3cret!", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
	assert.False(t, sec.CheckPasswordHash("s3cret!", "not-a-hash"))
}

/*
TestBearerToken exercises Authorization header parsing.
*/
func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"well_formed", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case_insensitive_scheme", "bearer abc.def.ghi", "abc.def.ghi", true},
		{"missing_header", "", "", false},
		{"wrong_scheme", "Basic dXNlcjpwYXNz", "", false},
		{"scheme_only", "Bearer", "", false},
		{"blank_token", "Bearer    ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, _ := http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}

			token, ok := sec.BearerToken(request)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, token)
		})
	}
}
