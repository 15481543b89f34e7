package usecase

import "strings"

// Allowed applies the black/white-list policy to a URL.
// A blacklist match always wins; a non-empty whitelist then requires a match;
// an empty whitelist means no restriction. Matching is prefix-based and
// case-insensitive. Pure function, no cache involvement.
func Allowed(url string, whitelist, blacklist []string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))

	for _, entry := range blacklist {
		if entry != "" && strings.HasPrefix(lower, strings.ToLower(entry)) {
			return false
		}
	}

	if len(whitelist) == 0 {
		return true
	}
	for _, entry := range whitelist {
		if entry != "" && strings.HasPrefix(lower, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}

// GroupBlocked checks the group blacklist
func GroupBlocked(groupID string, blackGroups []string) bool {
	for _, g := range blackGroups {
		if g != "" && g == groupID {
			return true
		}
	}
	return false
}
