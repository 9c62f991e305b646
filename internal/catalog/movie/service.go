// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/pkg/pagination"
)

// # Contracts & Types

// Cache is the read-through cache for detail lookups.
//
// Cached entities carry no internal row ID (it is stripped by
// serialization), so cache hits are used for rendering only — every write
// path loads the movie from the repository.
type Cache interface {
	Get(context context.Context, publicID string) (*Movie, error)
	Set(context context.Context, movie *Movie) error
	Invalidate(context context.Context, publicID string) error
}

// Service implements the catalog use cases.
type Service struct {
	repository Repository
	cache      Cache
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repository Repository, cache Cache) *Service {
	return &Service{repository: repository, cache: cache}
}

// movieNotFound is the uniform 404 for an unknown catalog entry.
func movieNotFound() *apperr.AppError {
	return apperr.NotFound("Movie not found")
}

// # Listing Flow

// ListQuery carries the client's filter, sort, and pagination choices.
type ListQuery struct {
	Title       string
	ReleaseYear *int

	// Sort is the raw comma-separated sort expression, e.g.
	// "title,-release_year". Unknown terms are ignored.
	Sort string

	Page pagination.Params
}

// ListResult is a catalog page. Meta is nil for unpaginated requests,
// which return the full result set.
type ListResult struct {
	Movies []*Movie
	Meta   *pagination.Meta
}

/*
List returns the catalog filtered, sorted, and optionally paginated.

Description: Mirrors the catalog browse contract: without a page parameter
the full filtered set is returned; with one, fixed 25-row pages are served
and a page past the end is a 404, never an empty list.

Parameters:
  - context: context.Context
  - query: ListQuery

Returns:
  - *ListResult: Movies plus pagination metadata when paginated
  - error: NotFound ("No more pages.") or storage failures
*/
func (service *Service) List(context context.Context, query ListQuery) (*ListResult, error) {
	filter := Filter{
		Title:       query.Title,
		ReleaseYear: query.ReleaseYear,
		Sort:        parseSort(query.Sort),
	}

	if !query.Page.Requested {
		movies, err := service.repository.List(context, filter)
		if err != nil {
			return nil, fmt.Errorf("movie_service_list_failed: %w", err)
		}
		return &ListResult{Movies: movies}, nil
	}

	total, err := service.repository.Count(context, filter)
	if err != nil {
		return nil, fmt.Errorf("movie_service_count_failed: %w", err)
	}

	if pagination.OutOfRange(query.Page.Page, total) {
		return nil, apperr.NotFound("No more pages.")
	}

	filter.Limit = pagination.RowsPerPage
	filter.Offset = query.Page.Offset()

	movies, err := service.repository.List(context, filter)
	if err != nil {
		return nil, fmt.Errorf("movie_service_list_page_failed: %w", err)
	}

	// The count is cumulative: rows on all pages up to and including this one.
	meta := pagination.NewMeta(query.Page.Page, filter.Offset+len(movies))
	return &ListResult{Movies: movies, Meta: &meta}, nil
}

// parseSort turns a comma-separated sort expression into validated keys.
// A leading or embedded '-' flips a term to descending.
func parseSort(raw string) []SortKey {
	if raw == "" {
		return nil
	}

	var keys []SortKey
	for _, term := range strings.Split(raw, ",") {
		desc := strings.Contains(term, "-")
		switch {
		case strings.Contains(term, "title"):
			keys = append(keys, SortKey{Field: SortByTitle, Desc: desc})
		case strings.Contains(term, "release_year"):
			keys = append(keys, SortKey{Field: SortByReleaseYear, Desc: desc})
		}
	}

	return keys
}

// # Detail Flow

/*
Find returns a single movie by public UUID, serving hot entries from cache.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *Movie: Hydrated entity
  - error: NotFound ("Movie not found") or storage failures
*/
func (service *Service) Find(context context.Context, publicID string) (*Movie, error) {
	if cached, err := service.cache.Get(context, publicID); err == nil && cached != nil {
		return cached, nil
	}

	m, err := service.repository.FindByPublicID(context, publicID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, movieNotFound()
		}
		return nil, fmt.Errorf("movie_service_find_failed: %w", err)
	}

	// Best effort: a failed cache write never fails the request.
	_ = service.cache.Set(context, m)

	return m, nil
}

// # Like Flow

/*
Like records a user's like and returns the movie with its fresh counter.

Description: Idempotent — liking an already-liked movie is a no-op that
still returns 200 with the current state.

Parameters:
  - context: context.Context
  - userID: int64
  - publicID: string

Returns:
  - *Movie: Entity with the updated like counter
  - error: NotFound or storage failures
*/
func (service *Service) Like(context context.Context, userID int64, publicID string) (*Movie, error) {
	return service.toggleLike(context, userID, publicID, service.repository.Like)
}

/*
Unlike removes a user's like and returns the movie with its fresh counter.

Description: Idempotent — unliking a movie that was never liked is a no-op.

Parameters:
  - context: context.Context
  - userID: int64
  - publicID: string

Returns:
  - *Movie: Entity with the updated like counter
  - error: NotFound or storage failures
*/
func (service *Service) Unlike(context context.Context, userID int64, publicID string) (*Movie, error) {
	return service.toggleLike(context, userID, publicID, service.repository.Unlike)
}

// toggleLike is the shared like/unlike path: load, mutate, invalidate,
// reload for the fresh counter.
func (service *Service) toggleLike(context context.Context, userID int64, publicID string, mutate func(ctx context.Context, movieID, userID int64) error) (*Movie, error) {
	m, err := service.repository.FindByPublicID(context, publicID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, movieNotFound()
		}
		return nil, fmt.Errorf("movie_service_like_lookup_failed: %w", err)
	}

	if err := mutate(context, m.ID, userID); err != nil {
		return nil, fmt.Errorf("movie_service_like_failed: %w", err)
	}

	_ = service.cache.Invalidate(context, publicID)

	fresh, err := service.repository.FindByPublicID(context, publicID)
	if err != nil {
		return nil, fmt.Errorf("movie_service_like_refresh_failed: %w", err)
	}

	return fresh, nil
}

/*
LikedBy returns every movie a user has liked, ordered by title.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - []*Movie: Liked movies
  - error: Storage failures
*/
func (service *Service) LikedBy(context context.Context, userID int64) ([]*Movie, error) {
	movies, err := service.repository.ListLikedBy(context, userID)
	if err != nil {
		return nil, fmt.Errorf("movie_service_liked_by_failed: %w", err)
	}
	return movies, nil
}

// # Catalog Management

/*
Create adds a new film to the catalog with a fresh public UUID.

Description: Used by the seeder; the public API has no write endpoint for
catalog entries.

Parameters:
  - context: context.Context
  - title: string
  - releaseYear: int
  - posterImgURL: string

Returns:
  - *Movie: Created entity
  - error: Storage failures
*/
func (service *Service) Create(context context.Context, title string, releaseYear int, posterImgURL string) (*Movie, error) {
	m := &Movie{
		PublicID:     uuid.NewString(),
		Title:        title,
		ReleaseYear:  releaseYear,
		PosterImgURL: posterImgURL,
	}

	if err := service.repository.Create(context, m); err != nil {
		return nil, fmt.Errorf("movie_service_create_failed: %w", err)
	}

	return m, nil
}
