// Copyright (c) 2026 Cinelog. All rights reserved.

// Package textnorm folds Unicode text into a plain ASCII-ish search form.
//
// # Usage
//
// Catalog title search matches accent-insensitively in both directions
// ("Amelie" finds "Amélie" and vice versa): the query term and the stored
// search column are both run through [Fold]. This package handles
// normalization and accent removal; case folding is left to the database
// ILIKE operator.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts an arbitrary Unicode string into its accent-free search form.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Recomposes to NFC and trims surrounding whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
