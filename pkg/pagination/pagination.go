// Copyright (c) 2026 Cinelog. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// List endpoints use fixed-size, 1-indexed pages requested via the "page"
// query parameter. The page size is not client-tunable; every list response
// carries a [Meta] block with the page number and the item count on it.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// RowsPerPage is the fixed number of items per page.
	RowsPerPage = 25
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page from a request's query string.
type Params struct {
	Page int

	// Requested reports whether the client asked for pagination at all.
	// Unpaginated requests return the full result set.
	Requested bool
}

// Offset returns the SQL OFFSET value derived from the page number.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * RowsPerPage
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page  int `json:"page"`
	Count int `json:"count"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(page, count int) Meta {
	return Meta{Page: page, Count: count}
}

// OutOfRange reports whether the requested page lies past the last page of
// a result set with total items. An empty result set has zero pages, so
// even page 1 is out of range.
func OutOfRange(page, total int) bool {
	lastPage := (total + RowsPerPage - 1) / RowsPerPage
	return page > lastPage
}

// FromRequest parses the "page" query parameter from an HTTP request.
//
// # Clamping
//
// Invalid or negative values are clamped to [DefaultPage]. An absent
// parameter yields Requested=false.
func FromRequest(r *http.Request) Params {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return Params{Page: DefaultPage, Requested: false}
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	return Params{Page: page, Requested: true}
}
