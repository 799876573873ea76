package model

import "strings"

// ContainsFold reports whether needle appears in haystack, ignoring case.
// This is the matching primitive for skills, capabilities and locations:
// containment over free-text token sets, not exact equality.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// EqualFold reports whether two field values are equal ignoring case and
// surrounding whitespace, the comparison used for record keys and statuses.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
