// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinelog/cinelog/internal/platform/dberr"
	"github.com/cinelog/cinelog/pkg/textnorm"
)

// # Movie Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// movieSelect hydrates a movie together with its derived like counter.
const movieSelect = `
	SELECT m.id, m.public_id, m.title, COALESCE(m.release_year, 0), COALESCE(m.poster_img_url, ''),
	       (SELECT COUNT(*) FROM movie_like ml WHERE ml.movie_id = m.id) AS likes
	FROM movie m`

/*
List returns movies matching the filter, with like counters.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Movie: Matching rows in filter order
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter) ([]*Movie, error) {
	query, args := buildListQuery(movieSelect, filter, true)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.PublicID, &m.Title, &m.ReleaseYear, &m.PosterImgURL, &m.Likes); err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_list_scan_failed: %w", err)
		}
		movies = append(movies, m)
	}

	return movies, rows.Err()
}

/*
Count returns the number of movies matching the filter.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - int: Total matching rows, ignoring Limit and Offset
  - error: Database errors
*/
func (repository *PostgresRepository) Count(context context.Context, filter Filter) (int, error) {
	query, args := buildListQuery(`SELECT COUNT(*) FROM movie m`, filter, false)

	var total int
	if err := repository.pool.QueryRow(context, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_movie_repo_count_failed: %w", err)
	}

	return total, nil
}

/*
FindByPublicID returns the movie with the given public UUID.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *Movie: Hydrated entity with like counter
  - error: ErrNotFound or database errors
*/
func (repository *PostgresRepository) FindByPublicID(context context.Context, publicID string) (*Movie, error) {
	query := movieSelect + ` WHERE m.public_id = $1`

	m := &Movie{}
	err := repository.pool.QueryRow(context, query, publicID).Scan(
		&m.ID, &m.PublicID, &m.Title, &m.ReleaseYear, &m.PosterImgURL, &m.Likes,
	)

	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_movie_repo_find_failed: %w", err)
	}

	return m, nil
}

/*
Create persists a new catalog entry and fills in the generated row ID.

The accent-folded search form of the title is stored alongside the display
title, so the title filter can fold both sides of the comparison.

Parameters:
  - context: context.Context
  - movie: *Movie

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) Create(context context.Context, movie *Movie) error {
	const query = `
		INSERT INTO movie (public_id, title, title_search, release_year, poster_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := repository.pool.QueryRow(context, query,
		movie.PublicID,
		movie.Title,
		textnorm.Fold(movie.Title),
		movie.ReleaseYear,
		movie.PosterImgURL,
	).Scan(&movie.ID)

	if err != nil {
		return fmt.Errorf("postgres_movie_repo_create_failed: %w", err)
	}

	return nil
}

/*
Like records a user's like for a movie. Idempotent via ON CONFLICT.

Parameters:
  - context: context.Context
  - movieID: int64
  - userID: int64

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) Like(context context.Context, movieID, userID int64) error {
	const query = `
		INSERT INTO movie_like (movie_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := repository.pool.Exec(context, query, movieID, userID); err != nil {
		return fmt.Errorf("postgres_movie_repo_like_failed: %w", err)
	}

	return nil
}

/*
Unlike removes a user's like for a movie. Idempotent.

Parameters:
  - context: context.Context
  - movieID: int64
  - userID: int64

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) Unlike(context context.Context, movieID, userID int64) error {
	const query = `DELETE FROM movie_like WHERE movie_id = $1 AND user_id = $2`

	if _, err := repository.pool.Exec(context, query, movieID, userID); err != nil {
		return fmt.Errorf("postgres_movie_repo_unlike_failed: %w", err)
	}

	return nil
}

/*
ListLikedBy returns every movie a user has liked, ordered by title.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - []*Movie: Liked movies
  - error: Database errors
*/
func (repository *PostgresRepository) ListLikedBy(context context.Context, userID int64) ([]*Movie, error) {
	query := movieSelect + `
		JOIN movie_like ml ON ml.movie_id = m.id
		WHERE ml.user_id = $1
		ORDER BY m.title`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_movie_repo_liked_by_failed: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.PublicID, &m.Title, &m.ReleaseYear, &m.PosterImgURL, &m.Likes); err != nil {
			return nil, fmt.Errorf("postgres_movie_repo_liked_by_scan_failed: %w", err)
		}
		movies = append(movies, m)
	}

	return movies, rows.Err()
}

// buildListQuery appends WHERE, ORDER BY, LIMIT and OFFSET clauses derived
// from the filter. Sort fields come from a closed enum, so they are safe to
// interpolate; user-supplied values always go through placeholders.
func buildListQuery(base string, filter Filter, withOrder bool) (string, []any) {
	var (
		builder strings.Builder
		clauses []string
		args    []any
	)
	builder.WriteString(base)

	if filter.Title != "" {
		// Both sides of the comparison are accent-folded: the pattern here,
		// the stored title in the title_search column written by Create.
		args = append(args, "%"+textnorm.Fold(filter.Title)+"%")
		clauses = append(clauses, fmt.Sprintf("m.title_search ILIKE $%d", len(args)))
	}

	if filter.ReleaseYear != nil {
		args = append(args, *filter.ReleaseYear)
		clauses = append(clauses, fmt.Sprintf("m.release_year = $%d", len(args)))
	}

	if len(clauses) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(clauses, " AND "))
	}

	if withOrder {
		builder.WriteString(orderClause(filter.Sort))

		if filter.Limit > 0 {
			args = append(args, filter.Limit)
			builder.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
			args = append(args, filter.Offset)
			builder.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))
		}
	}

	return builder.String(), args
}

// orderClause renders validated sort keys, defaulting to title order.
func orderClause(keys []SortKey) string {
	var terms []string
	for _, key := range keys {
		var column string
		switch key.Field {
		case SortByTitle:
			column = "m.title"
		case SortByReleaseYear:
			column = "m.release_year"
		default:
			continue
		}
		if key.Desc {
			column += " DESC"
		}
		terms = append(terms, column)
	}

	if len(terms) == 0 {
		return " ORDER BY m.title"
	}

	return " ORDER BY " + strings.Join(terms, ", ")
}
