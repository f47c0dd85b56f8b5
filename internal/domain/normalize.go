package domain

import (
	"strings"
)

// FoldHeadword returns the case-folded headword used in identity keys.
// Spelling is otherwise kept as is: whitespace and diacritics are significant.
func FoldHeadword(headword string) string {
	return strings.ToLower(headword)
}

// NormalizeQuery prepares lookup input:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses runs of whitespace into one space
func NormalizeQuery(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
