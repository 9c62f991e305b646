// Copyright (c) 2026 Cinelog. All rights reserved.

/*
Package movie implements the film catalog and its per-user like relationships.

# Architecture

The catalog is read-heavy: list and detail lookups dominate, with likes as
the only write path. Detail lookups go through a Redis cache; every like or
unlike invalidates the cached entry so the like counter stays honest.
*/
package movie

// # Domain Entities

// Movie represents a film in the catalog.
//
// # Serialization
//
// The internal row ID never leaves the service; external references use
// PublicID. Likes is a derived counter, not a stored column.
type Movie struct {
	ID           int64  `json:"-"`
	PublicID     string `json:"public_id"`
	Title        string `json:"title"`
	ReleaseYear  int    `json:"release_year"`
	PosterImgURL string `json:"poster_img_url"`
	Likes        int    `json:"likes"`
}

// LikeView is the trimmed serialization returned by the like and unlike
// endpoints: identity and counter only.
type LikeView struct {
	PublicID string `json:"public_id"`
	Title    string `json:"title"`
	Likes    int    `json:"likes"`
}

// Liked wraps a movie in its like/unlike response view.
func Liked(m *Movie) LikeView {
	return LikeView{PublicID: m.PublicID, Title: m.Title, Likes: m.Likes}
}

// # Sorting

// SortField identifies a column the catalog can be ordered by.
type SortField string

const (
	SortByTitle       SortField = "title"
	SortByReleaseYear SortField = "release_year"
)

// SortKey is one ORDER BY term, already validated by the service layer.
type SortKey struct {
	Field SortField
	Desc  bool
}

// # Filtering

// Filter narrows and orders a catalog listing. Zero values mean "no
// constraint"; Limit 0 means "no pagination".
type Filter struct {
	// Title matches as an accent-folded, case-insensitive substring.
	Title string

	// ReleaseYear matches exactly when non-nil.
	ReleaseYear *int

	// Sort lists ORDER BY terms in priority order.
	Sort []SortKey

	Limit  int
	Offset int
}
