// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the queried movie does not exist.
var ErrNotFound = errors.New("movie: not found")

// # Catalog Data Access

// Repository defines the data access contract for the film catalog.
type Repository interface {

	/*
		List returns movies matching the filter, with like counters.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - []*Movie: Matching rows in filter order
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter) ([]*Movie, error)

	/*
		Count returns the number of movies matching the filter,
		ignoring Limit and Offset.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - int: Total matching rows
		  - error: Database retrieval failures
	*/
	Count(context context.Context, filter Filter) (int, error)

	/*
		FindByPublicID returns the movie with the given public UUID.

		Parameters:
		  - context: context.Context
		  - publicID: string

		Returns:
		  - *Movie: Hydrated entity with like counter
		  - error: ErrNotFound or database retrieval failures
	*/
	FindByPublicID(context context.Context, publicID string) (*Movie, error)

	/*
		Create persists a new catalog entry and fills in its row ID.

		Parameters:
		  - context: context.Context
		  - movie: *Movie

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, movie *Movie) error

	/*
		Like records that a user likes a movie. Idempotent: liking an
		already-liked movie changes nothing.

		Parameters:
		  - context: context.Context
		  - movieID: int64
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	Like(context context.Context, movieID, userID int64) error

	/*
		Unlike removes a user's like. Idempotent: unliking a movie that
		was never liked changes nothing.

		Parameters:
		  - context: context.Context
		  - movieID: int64
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	Unlike(context context.Context, movieID, userID int64) error

	/*
		ListLikedBy returns every movie a user has liked, ordered by title.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - []*Movie: Liked movies
		  - error: Database retrieval failures
	*/
	ListLikedBy(context context.Context, userID int64) ([]*Movie, error)
}
