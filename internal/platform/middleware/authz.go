// Copyright (c) 2026 Cinelog. All rights reserved.

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/ctxkey"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// TokenVerifier defines the interface needed to verify session tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Decode(tokenString string) (*sec.TokenClaims, error)
}

// UserResolver loads the account behind a decoded token subject.
type UserResolver interface {
	FindByPublicID(ctx context.Context, publicID string) (*auth.User, error)
}

// Authenticate is the authorization gate for protected routes.
//
// # Flow
//  1. Extract 'Authorization: Bearer <token>'. Missing or malformed → 401.
//  2. Decode and verify the token. Expired → 403, tampered/garbage → 401.
//  3. Resolve the token subject to an account. Unknown subject → 401.
//  4. Inject the resolved [*auth.User] into the request context; downstream
//     handlers read it via [GetUser] instead of re-fetching.
//
// The gate does not consult the whitelist or the banned flag per request:
// revocation works by purging the whitelist entry, which blocks the next
// login, and banning is enforced at login time.
func Authenticate(verifier TokenVerifier, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Bearer Extraction ──────────────────────────────────────────
			tokenString, ok := sec.BearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.MissingToken("Authentication token is missing").
					WithDescription("Provide an 'Authorization: Bearer <token>' header"))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.Decode(tokenString)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.ExpiredToken("Authentication token has expired").
						WithDescription("Log in again to obtain a new token"))
					return
				}
				respond.Error(writer, request, apperr.InvalidToken("Authentication token is invalid"))
				return
			}

			// ── 3. Subject Resolution ─────────────────────────────────────────
			user, err := resolver.FindByPublicID(request.Context(), claims.PublicID)
			if err != nil || user == nil {
				// A correctly signed token whose subject no longer exists is
				// indistinguishable from a forged one to the client.
				respond.Error(writer, request, apperr.InvalidToken("Authentication token is invalid"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, user)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := GetUser(request.Context())
		if user == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests from non-admin accounts.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user := GetUser(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────
		if user == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────
		if !user.Admin {
			respond.Error(writer, request, apperr.Forbidden("Forbidden access for the current user"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the authenticated [*auth.User] from the [context.Context].
//
// # Returns
//   - The resolved account if the request passed the authorization gate.
//   - nil if the request is anonymous.
func GetUser(ctx context.Context) *auth.User {
	user, ok := ctx.Value(ctxkey.KeyUser).(*auth.User)
	if !ok {
		return nil
	}
	return user
}
