// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestParseSort verifies the tolerant sort expression parsing: substring
matching on known fields, '-' anywhere flips to descending, unknown terms
are dropped.
*/
func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []SortKey
	}{
		{"empty", "", nil},
		{"single_asc", "title", []SortKey{{Field: SortByTitle}}},
		{"single_desc", "-title", []SortKey{{Field: SortByTitle, Desc: true}}},
		{"embedded_dash", "title-", []SortKey{{Field: SortByTitle, Desc: true}}},
		{
			"combined",
			"title,-release_year",
			[]SortKey{{Field: SortByTitle}, {Field: SortByReleaseYear, Desc: true}},
		},
		{"unknown_term_dropped", "rating,title", []SortKey{{Field: SortByTitle}}},
		{"all_unknown", "rating,director", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSort(tt.raw))
		})
	}
}
