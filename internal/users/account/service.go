// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package account implements user profile retrieval and self-service updates.

# Access Model

Profiles are private: a user may read and edit only their own profile,
while admins may access anyone's. The package reuses the auth domain's
repository and owns no storage of its own.
*/
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelog/cinelog/internal/catalog/movie"
	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// LikedMoviesLister exposes the catalog's per-user like listing.
type LikedMoviesLister interface {
	LikedBy(context context.Context, userID int64) ([]*movie.Movie, error)
}

// Service implements the profile use cases.
type Service struct {
	userRepository auth.UserRepository
	likes          LikedMoviesLister
}

// NewService constructs a new [Service].
func NewService(userRepo auth.UserRepository, likes LikedMoviesLister) *Service {
	return &Service{userRepository: userRepo, likes: likes}
}

// profileNotFound is the uniform 404 for an unknown profile.
func profileNotFound() *apperr.AppError {
	return apperr.NotFound("User information not found")
}

// ownershipError is the 403 for cross-user profile access.
func ownershipError() *apperr.AppError {
	return apperr.Forbidden("Forbidden access for the current user").
		WithDescription("Users can only retrieve their own information.")
}

/*
GetProfile returns the profile behind a public UUID.

Description: The existence check runs before the ownership check, so an
unknown profile is a 404 even for callers who could not have read it.

Parameters:
  - context: context.Context
  - caller: *auth.User (the authenticated requester)
  - publicID: string

Returns:
  - *auth.User: Target profile
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) GetProfile(context context.Context, caller *auth.User, publicID string) (*auth.User, error) {
	return service.findOwned(context, caller, publicID)
}

/*
UpdateProfile changes the display name of a profile.

Parameters:
  - context: context.Context
  - caller: *auth.User
  - publicID: string
  - displayName: string

Returns:
  - *auth.User: Updated profile
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, caller *auth.User, publicID, displayName string) (*auth.User, error) {
	user, err := service.findOwned(context, caller, publicID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName

	if err := service.userRepository.Update(context, user); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	return user, nil
}

/*
LikedMovies returns the movies a profile has liked.

Parameters:
  - context: context.Context
  - caller: *auth.User
  - publicID: string

Returns:
  - []*movie.Movie: Liked movies, ordered by title
  - error: NotFound, Forbidden, or storage failures
*/
func (service *Service) LikedMovies(context context.Context, caller *auth.User, publicID string) ([]*movie.Movie, error) {
	user, err := service.findOwned(context, caller, publicID)
	if err != nil {
		return nil, err
	}

	movies, err := service.likes.LikedBy(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("account_service_likes_failed: %w", err)
	}

	return movies, nil
}

// findOwned loads the target profile and enforces owner-or-admin access.
func (service *Service) findOwned(context context.Context, caller *auth.User, publicID string) (*auth.User, error) {
	user, err := service.userRepository.FindByPublicID(context, publicID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, profileNotFound()
		}
		return nil, fmt.Errorf("account_service_lookup_failed: %w", err)
	}

	if caller.PublicID != publicID && !caller.Admin {
		return nil, ownershipError()
	}

	return user, nil
}
