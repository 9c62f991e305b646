// Copyright (c) 2026 Cinelog. All rights reserved.

package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// Handler implements the moderation panel HTTP endpoints.
//
// All routes are mounted behind the authorization gate plus the admin guard,
// so by the time a handler runs the caller is a verified admin.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with the moderation routes.
//
// # Endpoints
//   - GET    /users                      : List every account.
//   - PUT    /users/{public_id}/promote  : Grant the admin flag.
//   - PUT    /users/{public_id}/demote   : Remove the admin flag.
//   - PUT    /users/{public_id}/ban      : Ban and force-revoke the session.
//   - PUT    /users/{public_id}/unban    : Clear the banned flag.
//   - DELETE /users/{public_id}          : Delete the account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/users", handler.listUsers)
	router.Put("/users/{public_id}/promote", handler.action("User promoted to admin", handler.adminService.Promote))
	router.Put("/users/{public_id}/demote", handler.action("User demoted", handler.adminService.Demote))
	router.Put("/users/{public_id}/ban", handler.action("User banned", handler.adminService.Ban))
	router.Put("/users/{public_id}/unban", handler.action("User unbanned", handler.adminService.Unban))
	router.Delete("/users/{public_id}", handler.action("User deleted", handler.adminService.Delete))

	return router
}

/*
ListUsers returns the moderation overview of every account.

GET /admin/users

Response:
  - 200: {"users": [...]} with moderation fields included
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.adminService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	views := make([]auth.ModerationView, 0, len(users))
	for _, user := range users {
		views = append(views, auth.Moderation(user))
	}

	respond.OK(writer, map[string]any{"users": views})
}

// action adapts a single-target service call into a handler. Every
// moderation mutation shares the same wire shape: {message, user}.
func (handler *Handler) action(message string, call func(ctx context.Context, publicID string) (*auth.User, error)) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		publicID := requestutil.Param(request, "public_id")

		user, err := call(request.Context(), publicID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, map[string]any{
			auth.FieldMessage: message,
			auth.FieldUser:    auth.Moderation(user),
		})
	}
}
