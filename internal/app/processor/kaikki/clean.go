package kaikki

import "strings"

// distinctNonEmpty trims each value and returns the non-empty ones with
// duplicates removed, preserving the order of first occurrence.
// Never returns nil.
func distinctNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
