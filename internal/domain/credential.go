package domain

import "strings"

// Credential links a chat user to a WaniKani account via an API v2 token.
type Credential struct {
	UserID   int64
	APIToken string
}

// DefaultPrefix is used when a guild has no stored override.
const DefaultPrefix = "wk!"

// TokenLength is the expected length of a WaniKani API v2 token.
const TokenLength = 36

// ValidToken reports whether a token has the expected shape.
// This is a format check only; the token is not verified against the API.
func ValidToken(token string) bool {
	return len(token) == TokenLength && strings.Contains(token, "-")
}

// ValidPrefix reports whether a prefix is usable: non-empty and a single
// token with no embedded whitespace.
func ValidPrefix(prefix string) bool {
	return prefix != "" && !strings.ContainsAny(prefix, " \t\n")
}
