// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cinelog/cinelog/internal/platform/apperr"
	"github.com/cinelog/cinelog/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for minting and inspecting session tokens.
type TokenProvider interface {
	// Issue creates a signed session token for the given public user ID.
	Issue(publicID string) (string, error)

	// Decode verifies a token, returning [sec.ErrTokenExpired] or
	// [sec.ErrTokenInvalid] on failure.
	Decode(tokenString string) (*sec.TokenClaims, error)
}

// Service implements the authentication use cases: login with the
// one-live-token whitelist discipline, logout, registration, and forced
// session revocation.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login,
// or whitelist logic must be reviewed by the security team.
type Service struct {
	userRepository      UserRepository
	whitelistRepository WhitelistRepository
	tokenProvider       TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	whitelistRepo WhitelistRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:      userRepo,
		whitelistRepository: whitelistRepo,
		tokenProvider:       tokenProv,
	}
}

// credentialsError is the uniform 401 for a failed login. A generic message
// prevents username enumeration.
func credentialsError() *apperr.AppError {
	return apperr.Unauthorized("Invalid user credentials").
		WithDescription("Basic realm='Provide valid credentials'")
}

// # Authentication Flow

/*
Login validates user credentials and returns the user's live session token.

Description: Verifies identity via constant-time password comparison, then
applies the whitelist discipline: a user's existing token is returned
unchanged while it remains valid (idempotent login), an expired or corrupt
entry is deleted and replaced, and an absent entry yields a fresh token.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - string: The signed session token
  - error: Unauthorized (bad credentials), Forbidden (banned account),
    or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (string, error) {

	// Look up the account. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", credentialsError()
		}
		return "", fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Banned accounts are rejected here, at login time. Holders of a live
	// token keep it until it expires or an admin ban purges the whitelist.
	if user.Banned {
		return "", apperr.Forbidden("User is banned").
			WithDescription("Contact an administrator to restore access")
	}

	// Constant-time comparison in bcrypt prevents timing attacks.
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return "", credentialsError()
	}

	return service.activeToken(context, user)
}

// activeToken returns the user's live token, minting a replacement when the
// stored one is no longer usable.
func (service *Service) activeToken(context context.Context, user *User) (string, error) {
	entry, err := service.whitelistRepository.GetActive(context, user.ID)

	switch {
	case err == nil:
		// Existing entry: return it unchanged while its token decodes
		// cleanly. Repeated logins yield byte-identical tokens.
		if _, decodeErr := service.tokenProvider.Decode(entry.Token); decodeErr == nil {
			return entry.Token, nil
		}

		// Expired or undecodable entry: delete then reissue. A corrupt
		// row must not pin the user out of login.
		if revokeErr := service.whitelistRepository.Revoke(context, user.ID); revokeErr != nil {
			return "", fmt.Errorf("auth_service_stale_revoke_failed: %w", revokeErr)
		}

	case errors.Is(err, ErrNotFound):
		// No live session: fall through to mint one.

	default:
		return "", fmt.Errorf("auth_service_whitelist_lookup_failed: %w", err)
	}

	return service.issueAndStore(context, user)
}

// issueAndStore mints a token and records it in the whitelist. A concurrent
// login racing this insert loses to the UNIQUE(user_id) constraint, in which
// case the winner's token is fetched and returned instead.
func (service *Service) issueAndStore(context context.Context, user *User) (string, error) {
	token, err := service.tokenProvider.Issue(user.PublicID)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	insertErr := service.whitelistRepository.Insert(context, &WhitelistEntry{
		UserID: user.ID,
		Token:  token,
	})

	if insertErr == nil {
		return token, nil
	}

	if errors.Is(insertErr, ErrDuplicate) {
		winner, fetchErr := service.whitelistRepository.GetActive(context, user.ID)
		if fetchErr != nil {
			return "", fmt.Errorf("auth_service_conflict_refetch_failed: %w", fetchErr)
		}
		return winner.Token, nil
	}

	return "", fmt.Errorf("auth_service_whitelist_insert_failed: %w", insertErr)
}

/*
Logout revokes the session identified by a raw bearer token.

Description: Deletes the matching whitelist row. An unrecognized or
already-revoked token is a benign outcome, not an error.

Parameters:
  - context: context.Context
  - rawToken: string

Returns:
  - bool: true if a live session was actually terminated
  - error: Persistence failures only
*/
func (service *Service) Logout(context context.Context, rawToken string) (bool, error) {
	revoked, err := service.whitelistRepository.RevokeByToken(context, rawToken)
	if err != nil {
		return false, fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return revoked, nil
}

/*
Revoke force-terminates a user's live session, if any.

Description: Used by the admin panel: ban and delete both purge the
whitelist entry so the target cannot keep using a still-valid token
after re-login is blocked.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Persistence failures only
*/
func (service *Service) Revoke(context context.Context, userID int64) error {
	if err := service.whitelistRepository.Revoke(context, userID); err != nil {
		return fmt.Errorf("auth_service_revoke_failed: %w", err)
	}
	return nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string

	// Admin is honored only when the caller is themselves an admin.
	Admin bool
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new member with a hashed password and a freshly
generated public UUID. The admin flag in the input is honored only for
admin callers; anonymous and member callers always create member accounts.

Parameters:
  - context: context.Context
  - input: RegisterInput
  - caller: *User (nil for anonymous registration)

Returns:
  - *User: Created entity
  - error: Validation (missing fields) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput, caller *User) (*User, error) {

	// Username and password are both mandatory.
	if input.Username == "" || input.Password == "" {
		return nil, apperr.Validation("Missing user data")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		PublicID:     uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Admin:        input.Admin && caller != nil && caller.Admin,
	}

	// A duplicate username surfaces as a plain 500 on this endpoint. The
	// store-level conflict is not remapped to 409 here.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_service_register_failed: %w", err))
	}

	return user, nil
}

// # Gate Support

/*
FindByPublicID resolves a decoded token subject to an account.

Description: Called by the authorization gate on every protected request.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *User: Hydrated entity, nil when the subject no longer exists
  - error: Database failures only
*/
func (service *Service) FindByPublicID(context context.Context, publicID string) (*User, error) {
	user, err := service.userRepository.FindByPublicID(context, publicID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth_service_resolve_failed: %w", err)
	}
	return user, nil
}
