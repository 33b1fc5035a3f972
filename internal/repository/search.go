package repository

import "strings"

// lowered normalizes a search term for the lower() LIKE comparisons the
// substring searches rely on. sqlite's native LIKE is only
// case-insensitive for ASCII, so both sides are folded explicitly.
func lowered(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
