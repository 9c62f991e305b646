// Copyright (c) 2026 Cinelog. All rights reserved.

package auth

import (
	"context"
	"errors"
)

// Sentinel store errors. Postgres implementations translate driver-level
// failures into these so the service layer never imports pgx.
var (
	// ErrNotFound is returned when the queried row does not exist.
	ErrNotFound = errors.New("auth: not found")

	// ErrDuplicate is returned on a unique-constraint violation
	// (username collision, or a concurrent whitelist insert).
	ErrDuplicate = errors.New("auth: duplicate")
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByPublicID returns the account with the given public UUID.

		Parameters:
		  - context: context.Context
		  - publicID: string

		Returns:
		  - *User: Hydrated entity
		  - error: ErrNotFound or database retrieval failures
	*/
	FindByPublicID(context context.Context, publicID string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: ErrNotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		List returns every account, ordered by username.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)

	/*
		Create persists a brand-new user account and fills in its row ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrDuplicate on username collision, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to the mutable fields (display name,
		admin and banned flags).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: ErrNotFound or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete removes the account row. Whitelist entries and likes are
		removed by FK cascade.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: ErrNotFound or persistence failures
	*/
	Delete(context context.Context, id int64) error
}

// # Whitelist Data Access

// WhitelistRepository defines the data access contract for live-session
// records. It is the single source of truth for "is this session still
// valid", independent of the token's embedded expiry claim.
type WhitelistRepository interface {

	/*
		GetActive returns the live entry for a user, if any.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - *WhitelistEntry: The user's single live entry
		  - error: ErrNotFound when the user has no live session
	*/
	GetActive(context context.Context, userID int64) (*WhitelistEntry, error)

	/*
		Insert persists a freshly minted entry. The UNIQUE constraint on
		user_id enforces the at-most-one-per-user invariant; a concurrent
		winner surfaces as ErrDuplicate and the caller re-fetches.

		Parameters:
		  - context: context.Context
		  - entry: *WhitelistEntry

		Returns:
		  - error: ErrDuplicate on a concurrent insert, or persistence failures
	*/
	Insert(context context.Context, entry *WhitelistEntry) error

	/*
		Revoke deletes the entry for a user. Idempotent: absence is not
		an error.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures only
	*/
	Revoke(context context.Context, userID int64) error

	/*
		RevokeByToken deletes the entry matching a raw token value and
		reports whether a row was actually removed. Used for logout when
		only the bearer token (not the user id) is known.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - bool: true if an entry was deleted
		  - error: Persistence failures only
	*/
	RevokeByToken(context context.Context, token string) (bool, error)
}
