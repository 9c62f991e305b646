// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/users/auth"
	"github.com/cinelog/cinelog/pkg/pagination"
)

// Handler implements the catalog HTTP endpoints.
//
// All routes are mounted behind the authorization gate: by the time a
// handler runs, the caller is a resolved account.
type Handler struct {
	movieService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{movieService: service}
}

// Routes returns a [chi.Router] configured with catalog routes.
//
// # Endpoints
//   - GET    /                    : List movies (filter, sort, optional pagination).
//   - GET    /{public_id}         : Single movie detail.
//   - PUT    /{public_id}/like    : Like a movie (idempotent).
//   - DELETE /{public_id}/unlike  : Remove a like (idempotent).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{public_id}", handler.detail)
	router.Put("/{public_id}/like", handler.like)
	router.Delete("/{public_id}/unlike", handler.unlike)

	return router
}

/*
List returns the film catalog.

GET /api/v1/movies?title=&release_year=&sort=&page=

Description: Filters by title substring (accent-insensitive) and exact
release year, sorts by a comma-separated expression, and paginates in
fixed 25-row pages when "page" is present.

Response:
  - 200: [...] (unpaginated) or {"page": n, "count": c, "movies": [...]}
  - 404: {"message": "No more pages."} past the last page
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := ListQuery{
		Title: request.URL.Query().Get("title"),
		Sort:  request.URL.Query().Get("sort"),
		Page:  pagination.FromRequest(request),
	}

	if raw := request.URL.Query().Get("release_year"); raw != "" {
		// A non-integer release_year filter is ignored, not an error.
		if year, err := strconv.Atoi(raw); err == nil {
			query.ReleaseYear = &year
		}
	}

	result, err := handler.movieService.List(request.Context(), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Meta == nil {
		respond.OK(writer, emptyAsList(result.Movies))
		return
	}

	respond.OK(writer, map[string]any{
		"page":   result.Meta.Page,
		"count":  result.Meta.Count,
		"movies": emptyAsList(result.Movies),
	})
}

/*
Detail returns a single movie.

GET /api/v1/movies/{public_id}

Response:
  - 200: Movie
  - 404: {"message": "Movie not found"}
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	publicID := requestutil.Param(request, "public_id")

	m, err := handler.movieService.Find(request.Context(), publicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, m)
}

/*
Like records the caller's like for a movie.

PUT /api/v1/movies/{public_id}/like

Response:
  - 200: {"message": "Movie '<title>' liked", "movie": {...}}
  - 404: {"message": "Movie not found"}
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, "liked", handler.movieService.Like)
}

/*
Unlike removes the caller's like for a movie.

DELETE /api/v1/movies/{public_id}/unlike

Response:
  - 200: {"message": "Movie '<title>' unliked", "movie": {...}}
  - 404: {"message": "Movie not found"}
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	handler.toggle(writer, request, "unliked", handler.movieService.Unlike)
}

// toggle is the shared like/unlike transport path.
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request, verb string, call func(ctx context.Context, userID int64, publicID string) (*Movie, error)) {
	caller := auth.CallerFromContext(request.Context())
	if caller == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	publicID := requestutil.Param(request, "public_id")

	m, err := call(request.Context(), caller.ID, publicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"message": fmt.Sprintf("Movie '%s' %s", m.Title, verb),
		"movie":   Liked(m),
	})
}

// emptyAsList keeps an empty result as [] instead of null on the wire.
func emptyAsList(movies []*Movie) []*Movie {
	if movies == nil {
		return []*Movie{}
	}
	return movies
}
