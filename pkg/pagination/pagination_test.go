// Copyright (c) 2026 Cinelog. All rights reserved.

package pagination_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinelog/cinelog/pkg/pagination"
)

/*
TestParams_Offset verifies the page-to-OFFSET conversion.
*/
func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"first_page", 1, 0},
		{"second_page", 2, 25},
		{"fifth_page", 5, 100},
		{"zero_clamps", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.Params{Page: tt.page, Requested: true}
			assert.Equal(t, tt.want, params.Offset())
		})
	}
}

/*
TestOutOfRange verifies last-page detection. An empty result set has zero
pages, so page 1 of nothing is already past the end.
*/
func TestOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		total int
		want  bool
	}{
		{"page_one_empty_set", 1, 0, true},
		{"page_two_empty_set", 2, 0, true},
		{"page_one_nonempty", 1, 10, false},
		{"exact_last_page", 2, 50, false},
		{"one_past_last", 3, 50, true},
		{"partial_last_page", 2, 26, false},
		{"deep_overshoot", 100, 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.OutOfRange(tt.page, tt.total))
		})
	}
}

/*
TestFromRequest verifies query parsing, clamping, and the Requested flag.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		wantPage      int
		wantRequested bool
	}{
		{"absent_param", "/movies", 1, false},
		{"explicit_page", "/movies?page=3", 3, true},
		{"page_one", "/movies?page=1", 1, true},
		{"non_numeric_clamps", "/movies?page=abc", 1, true},
		{"negative_clamps", "/movies?page=-2", 1, true},
		{"zero_clamps", "/movies?page=0", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, _ := http.NewRequest(http.MethodGet, tt.url, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantRequested, params.Requested)
		})
	}
}
