// Copyright (c) 2026 Cinelog. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/validate"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// Handler implements the profile HTTP endpoints.
//
// All routes are mounted behind the authorization gate.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with profile routes.
//
// # Endpoints
//   - GET /{public_id}        : Read a profile (owner or admin).
//   - PUT /{public_id}        : Update the display name (owner or admin).
//   - GET /{public_id}/movies : List the profile's liked movies.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{public_id}", handler.getProfile)
	router.Put("/{public_id}", handler.updateProfile)
	router.Get("/{public_id}/movies", handler.likedMovies)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

/*
GetProfile returns a user profile.

GET /api/v1/users/{public_id}

Description: Admin viewers receive the moderation view with the admin and
banned flags; everyone else sees the default fields only.

Response:
  - 200: User (or moderation view for admin callers)
  - 403: {"message": "Forbidden access for the current user"}
  - 404: {"message": "User information not found"}
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	caller, err := requireCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), caller, requestutil.Param(request, "public_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if caller.Admin {
		respond.OK(writer, auth.Moderation(user))
		return
	}

	respond.OK(writer, user)
}

/*
UpdateProfile changes the profile's display name.

PUT /api/v1/users/{public_id}

Request:
  - Body: updateProfileRequest (DisplayName)

Response:
  - 200: {"message": "User updated", "user": {...}}
  - 403: Cross-user access without admin rights
  - 404: Unknown profile
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	caller, err := requireCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldDisplayName, input.DisplayName).
		MaxLen(auth.FieldDisplayName, input.DisplayName, 50)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(
		request.Context(),
		caller,
		requestutil.Param(request, "public_id"),
		input.DisplayName,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		auth.FieldMessage: "User updated",
		auth.FieldUser:    user,
	})
}

/*
LikedMovies lists the movies a profile has liked.

GET /api/v1/users/{public_id}/movies

Response:
  - 200: {"movies": [...]}
  - 403: Cross-user access without admin rights
  - 404: Unknown profile
*/
func (handler *Handler) likedMovies(writer http.ResponseWriter, request *http.Request) {
	caller, err := requireCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.accountService.LikedMovies(request.Context(), caller, requestutil.Param(request, "public_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"movies": movies})
}

// requireCaller extracts the gate-resolved account from the request.
func requireCaller(request *http.Request) (*auth.User, error) {
	caller := auth.CallerFromContext(request.Context())
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return caller, nil
}
