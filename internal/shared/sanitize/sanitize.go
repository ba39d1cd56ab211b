// Package sanitize strips unsafe markup from user-supplied free text
// before it reaches persistence.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes all HTML elements and attributes. The policy is
// immutable after construction and safe for concurrent use.
var strict = bluemonday.StrictPolicy()

// Text sanitizes s and enforces maxLen in runes. Tags are stripped, entities
// decoded back to plain text, and surrounding whitespace trimmed.
func Text(s string, maxLen int) string {
	cleaned := html.UnescapeString(strict.Sanitize(s))
	cleaned = strings.TrimSpace(cleaned)
	if maxLen > 0 {
		runes := []rune(cleaned)
		if len(runes) > maxLen {
			cleaned = string(runes[:maxLen])
		}
	}
	return cleaned
}
