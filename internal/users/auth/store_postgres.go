// Copyright (c) 2026 Cinelog. All rights reserved.

// PostgreSQL implementations of the auth repositories.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, SQLSTATE 23505) are mapped to the
// package sentinels [ErrNotFound] and [ErrDuplicate] so callers never depend
// on driver details.
package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/cinelog/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, public_id, username, password, display_name, admin, banned`

/*
FindByPublicID retrieves a user record by their public UUID.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *User: Hydrated account entity
  - error: ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByPublicID(context context.Context, publicID string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM user_profile
		WHERE public_id = $1`

	return repository.scanOne(context, query, publicID)
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: ErrNotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM user_profile
		WHERE username = $1`

	return repository.scanOne(context, query, username)
}

/*
List returns every account ordered by username.

Parameters:
  - context: context.Context

Returns:
  - []*User: All accounts
  - error: Database errors
*/
func (repository *PostgresUserRepository) List(context context.Context) ([]*User, error) {
	const query = `
		SELECT ` + userColumns + `
		FROM user_profile
		ORDER BY username`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.PublicID,
			&user.Username,
			&user.PasswordHash,
			&user.DisplayName,
			&user.Admin,
			&user.Banned,
		); err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

/*
Create persists a new user record and fills in the generated row ID.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: ErrDuplicate on username collision, or database errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO user_profile (public_id, username, password, display_name, admin, banned)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		user.PublicID,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.Admin,
		user.Banned,
	).Scan(&user.ID)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists the mutable fields of an account.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: ErrNotFound if the row is gone, or database errors
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE user_profile
		SET display_name = $2, admin = $3, banned = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query,
		user.ID,
		user.DisplayName,
		user.Admin,
		user.Banned,
	)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

/*
Delete removes an account row. Dependent rows (whitelist entry, likes)
are removed by FK cascade.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: ErrNotFound if the row is gone, or database errors
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM user_profile WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scanOne runs a single-row query and hydrates a User.
func (repository *PostgresUserRepository) scanOne(context context.Context, query string, args ...any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, args...).Scan(
		&user.ID,
		&user.PublicID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Admin,
		&user.Banned,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_query_failed: %w", err)
	}

	return user, nil
}

// # Whitelist Repository

// PostgresWhitelistRepository implements the [WhitelistRepository] interface using pgx.
type PostgresWhitelistRepository struct {
	pool *pgxpool.Pool
}

// NewWhitelistRepository creates a new PostgreSQL implementation of the WhitelistRepository.
func NewWhitelistRepository(pool *pgxpool.Pool) *PostgresWhitelistRepository {
	return &PostgresWhitelistRepository{pool: pool}
}

/*
GetActive returns the live whitelist entry for a user.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *WhitelistEntry: The user's single live entry
  - error: ErrNotFound when no session exists, or database errors
*/
func (repository *PostgresWhitelistRepository) GetActive(context context.Context, userID int64) (*WhitelistEntry, error) {
	const query = `
		SELECT id, user_id, token
		FROM jwt_whitelist
		WHERE user_id = $1`

	entry := &WhitelistEntry{}
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.Token,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_whitelist_repo_get_failed: %w", err)
	}

	return entry, nil
}

/*
Insert persists a freshly minted whitelist entry.

The UNIQUE constraint on user_id makes concurrent logins for the same user
race safely: exactly one insert wins, the loser gets ErrDuplicate and
re-fetches the winner's token.

Parameters:
  - context: context.Context
  - entry: *WhitelistEntry

Returns:
  - error: ErrDuplicate on a concurrent insert, or database errors
*/
func (repository *PostgresWhitelistRepository) Insert(context context.Context, entry *WhitelistEntry) error {
	const query = `
		INSERT INTO jwt_whitelist (user_id, token)
		VALUES ($1, $2)
		RETURNING id`

	err := repository.pool.QueryRow(context, query, entry.UserID, entry.Token).Scan(&entry.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("postgres_whitelist_repo_insert_failed: %w", err)
	}

	return nil
}

/*
Revoke deletes the whitelist entry for a user. Idempotent.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Database errors only
*/
func (repository *PostgresWhitelistRepository) Revoke(context context.Context, userID int64) error {
	const query = `DELETE FROM jwt_whitelist WHERE user_id = $1`

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_whitelist_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeByToken deletes the whitelist entry matching a raw token value.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - bool: true if an entry was deleted
  - error: Database errors only
*/
func (repository *PostgresWhitelistRepository) RevokeByToken(context context.Context, token string) (bool, error) {
	const query = `DELETE FROM jwt_whitelist WHERE token = $1`

	tag, err := repository.pool.Exec(context, query, token)
	if err != nil {
		return false, fmt.Errorf("postgres_whitelist_repo_revoke_by_token_failed: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
