// Copyright (c) 2026 Cinelog. All rights reserved.

/*
HTTP delivery layer for the authentication lifecycle.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service:
  - Protocol: Standard RESTful JSON interface.
  - Security: HTTP Basic for login, bearer tokens everywhere else.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes,
headers, JSON).
*/
package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/ctxkey"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (Login, Register,
// Logout). All three routes are mounted publicly: login and register must be
// reachable anonymously, and logout resolves its own bearer token.
type Handler struct {
	authService *Service
	tokens      TokenProvider
}

// NewHandler constructs a new [Handler] with its service dependencies.
func NewHandler(service *Service, tokens TokenProvider) *Handler {
	return &Handler{authService: service, tokens: tokens}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - GET  /login    : Authenticates via HTTP Basic and returns the session token.
//   - POST /register : Creates a new account.
//   - GET  /logout   : Revokes the presented bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/login", handler.login)
	router.Post("/register", handler.register)
	router.Get("/logout", handler.logout)

	return router
}

// CallerFromContext retrieves the authenticated [*User] placed in the
// context by the authorization gate, or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(ctxkey.KeyUser).(*User)
	return user
}

// # Request Payloads

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Admin       bool   `json:"admin"`
}

/*
Login authenticates a user and returns their live session token.

GET /auth/login

Description: Reads HTTP Basic credentials, verifies them, and returns the
user's whitelisted token. Logging in repeatedly while the token is valid
returns the identical token string.

Response:
  - 200: {"token": "<jwt>"}
  - 401: Missing/blank Basic header or invalid credentials
  - 403: Account is banned
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	username, password, ok := request.BasicAuth()

	if !ok || username == "" || password == "" {
		respond.Error(writer, request, apperr.Unauthorized("Invalid authorization request").
			WithDescription("Basic realm='Provide valid credentials'"))
		return
	}

	token, err := handler.authService.Login(request.Context(), username, password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: token})
}

/*
Register handles the creation of a new user account.

POST /auth/register

Description: Validates input and persists a new user profile. An
authenticated admin caller may set "admin": true in the body to create
another admin account; for everyone else the flag is ignored.

Request:
  - Body: registerRequest (Username, Password, DisplayName, Admin)

Response:
  - 201: {"message": ..., "user": {...}}
  - 422: {"message": "Missing user data"}
  - 500: Duplicate username (store-level uniqueness conflict)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Admin:       input.Admin,
	}, handler.caller(request))

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldMessage: "User registered",
		FieldUser:    user,
	})
}

/*
Logout revokes the presented session token.

GET /auth/logout

Description: Deletes the whitelist row matching the bearer token. A token
that is unknown or already revoked yields a benign "No user logged"
response, not an error.

Response:
  - 200: {"message": "User logged out"} or {"message": "No user logged"}
  - 401: Missing or malformed Authorization header
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	rawToken, ok := sec.BearerToken(request)
	if !ok {
		respond.Error(writer, request, apperr.MissingToken("Authentication token is missing").
			WithDescription("Provide an 'Authorization: Bearer <token>' header"))
		return
	}

	revoked, err := handler.authService.Logout(request.Context(), rawToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message := "No user logged"
	if revoked {
		message = "User logged out"
	}

	respond.OK(writer, map[string]string{FieldMessage: message})
}

// caller resolves the optional bearer token on a public route to an account.
// Anonymous requests and garbage tokens both resolve to nil.
func (handler *Handler) caller(request *http.Request) *User {
	if user := CallerFromContext(request.Context()); user != nil {
		return user
	}

	rawToken, ok := sec.BearerToken(request)
	if !ok {
		return nil
	}

	claims, err := handler.tokens.Decode(rawToken)
	if err != nil {
		return nil
	}

	user, err := handler.authService.FindByPublicID(request.Context(), claims.PublicID)
	if err != nil {
		return nil
	}
	return user
}
