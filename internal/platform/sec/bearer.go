// Copyright (c) 2026 Cinelog. All rights reserved.

package sec

import (
	"net/http"
	"strings"
)

// # Bearer Extraction

// BearerToken extracts the raw token from the Authorization header.
//
// Returns the token string and true when the header carries a well-formed
// "Bearer <token>" value, or ("", false) when the header is absent or
// malformed. The scheme comparison is case-insensitive per RFC 6750.
func BearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
