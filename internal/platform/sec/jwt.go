// Copyright (c) 2026 Cinelog. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by [TokenService.Decode]. Callers use these to
// distinguish an expired session (which can be silently replaced) from a
// tampered or malformed token (which is rejected outright).
var (
	// ErrTokenExpired indicates the token was well-formed and correctly
	// signed, but its expiry is in the past.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid indicates the token failed signature or format checks.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// TokenClaims represents the payload embedded inside a session token.
//
// The subject of the token is the user's public UUID, duplicated in the
// public_id claim for clients that only inspect the custom payload.
type TokenClaims struct {
	jwt.RegisteredClaims

	PublicID string `json:"public_id"`
}

// TokenService handles generation and verification of session tokens
// using HMAC-SHA256 and a shared secret key.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (service *TokenService) TTL() time.Duration {
	return service.ttl
}

// Issue creates a new signed session token for the given public user ID.
// The token expires after the service's configured TTL.
func (service *TokenService) Issue(publicID string) (string, error) {
	currentTime := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   publicID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		PublicID: publicID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode checks the signature and validity of a token string.
//
// Returns:
//   - (*TokenClaims, nil) for a live, correctly signed token.
//   - [ErrTokenExpired] when the token is authentic but past its expiry.
//   - [ErrTokenInvalid] for any other failure (bad signature, wrong
//     algorithm, garbage input).
func (service *TokenService) Decode(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		// Expiry is reported separately: the whitelist treats a stale
		// token from a returning user differently from a forged one.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
