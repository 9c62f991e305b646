// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package admin implements the user moderation panel.

It exposes privileged operations on accounts: listing, promotion, demotion,
banning, and deletion. Ban and delete additionally force-revoke the target's
live session so a still-valid token dies with the account's standing.

# Architecture

The package reuses the auth domain's repositories; it owns no storage of its
own. Every operation targets a user by public UUID.
*/
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/users/auth"
)

// SessionRevoker force-terminates a user's live session.
type SessionRevoker interface {
	Revoke(context context.Context, userID int64) error
}

// Service implements the moderation use cases.
type Service struct {
	userRepository auth.UserRepository
	sessions       SessionRevoker
}

// NewService constructs a new [Service].
func NewService(userRepo auth.UserRepository, sessions SessionRevoker) *Service {
	return &Service{userRepository: userRepo, sessions: sessions}
}

// targetNotFound is the uniform 404 for an unknown moderation target.
func targetNotFound() *apperr.AppError {
	return apperr.NotFound("User not found")
}

/*
ListUsers returns every account for the moderation overview.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All accounts, ordered by username
  - error: Storage failures
*/
func (service *Service) ListUsers(context context.Context) ([]*auth.User, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_list_failed: %w", err)
	}
	return users, nil
}

/*
Promote grants the admin flag to the target account.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *auth.User: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) Promote(context context.Context, publicID string) (*auth.User, error) {
	return service.updateFlags(context, publicID, func(user *auth.User) {
		user.Admin = true
	})
}

/*
Demote removes the admin flag from the target account.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *auth.User: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) Demote(context context.Context, publicID string) (*auth.User, error) {
	return service.updateFlags(context, publicID, func(user *auth.User) {
		user.Admin = false
	})
}

/*
Ban marks the target account as banned and force-revokes its live session.

Description: The banned flag blocks the next login; purging the whitelist
entry is what actually terminates current access, since the gate does not
re-check the banned flag per request.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *auth.User: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) Ban(context context.Context, publicID string) (*auth.User, error) {
	user, err := service.updateFlags(context, publicID, func(user *auth.User) {
		user.Banned = true
	})
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(context, user.ID); err != nil {
		return nil, fmt.Errorf("admin_service_ban_revoke_failed: %w", err)
	}

	return user, nil
}

/*
Unban clears the banned flag on the target account.

Description: Does not restore any session; the user simply logs in again.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *auth.User: Updated entity
  - error: NotFound or storage failures
*/
func (service *Service) Unban(context context.Context, publicID string) (*auth.User, error) {
	return service.updateFlags(context, publicID, func(user *auth.User) {
		user.Banned = false
	})
}

/*
Delete removes the target account entirely.

Description: The whitelist entry and like rows fall with the account via FK
cascade; the session is revoked explicitly first so revocation does not
depend on schema wiring.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *auth.User: The deleted entity (final snapshot)
  - error: NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, publicID string) (*auth.User, error) {
	user, err := service.findTarget(context, publicID)
	if err != nil {
		return nil, err
	}

	if err := service.sessions.Revoke(context, user.ID); err != nil {
		return nil, fmt.Errorf("admin_service_delete_revoke_failed: %w", err)
	}

	if err := service.userRepository.Delete(context, user.ID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, targetNotFound()
		}
		return nil, fmt.Errorf("admin_service_delete_failed: %w", err)
	}

	return user, nil
}

// findTarget resolves a public UUID to an account or a client-safe 404.
func (service *Service) findTarget(context context.Context, publicID string) (*auth.User, error) {
	user, err := service.userRepository.FindByPublicID(context, publicID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, targetNotFound()
		}
		return nil, fmt.Errorf("admin_service_target_lookup_failed: %w", err)
	}
	return user, nil
}

// updateFlags loads the target, applies the mutation, and persists it.
func (service *Service) updateFlags(context context.Context, publicID string, mutate func(*auth.User)) (*auth.User, error) {
	user, err := service.findTarget(context, publicID)
	if err != nil {
		return nil, err
	}

	mutate(user)

	if err := service.userRepository.Update(context, user); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return nil, targetNotFound()
		}
		return nil, fmt.Errorf("admin_service_update_failed: %w", err)
	}

	return user, nil
}
