// Copyright (c) 2025 PetWay
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// authFailurePhrases are the server messages that mean the token is no
// longer accepted, matched case-insensitively as substrings.
var authFailurePhrases = []string{"token expir", "token inválido"}

// bearer formats the Authorization header value for token.
func bearer(token string) string {
	return "Bearer " + token
}

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns "" when the value has another scheme or no token.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 || !strings.EqualFold(v[:6], "bearer") {
		return ""
	}
	return strings.TrimSpace(v[6:])
}

// isAuthFailure reports whether a failed response means the session is over.
func isAuthFailure(status int, msg string) bool {
	if status == http.StatusUnauthorized {
		return true
	}
	lower := strings.ToLower(msg)
	for _, p := range authFailurePhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
