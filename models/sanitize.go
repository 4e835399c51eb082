package models

import (
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[<>;{}]`)

// Sanitize strips markup and statement characters and collapses whitespace.
func Sanitize(value string) string {
	value = unsafeChars.ReplaceAllString(value, "")
	return strings.Join(strings.Fields(value), " ")
}

// SanitizeValue applies Sanitize to strings and returns anything else unchanged.
func SanitizeValue(value any) any {
	if s, ok := value.(string); ok {
		return Sanitize(s)
	}
	return value
}
