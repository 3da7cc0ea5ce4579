package identity

import "strings"

// NormalizeEmail performs case-insensitive canonicalization.
// The same normalization is applied at registration, login, and token
// subject resolution, so "at most one user per email" holds regardless
// of the casing a client sends.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeUsername trims surrounding whitespace. Usernames are display
// names here, not lookup keys, so case is preserved.
func NormalizeUsername(s string) string {
	return strings.TrimSpace(s)
}
