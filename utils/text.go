package utils

import "strings"

// FoldKey normalizes a user supplied name into its case-insensitive lookup key
func FoldKey(name string) string {
	return strings.ToLower(name)
}

// LessFold compares two strings ignoring case, falling back to the raw strings on a tie
func LessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// ContainsFold reports whether substr is within s ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
