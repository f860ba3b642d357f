// Package helpers provides small text, date, name and identifier utilities
// shared by the JATS builders.
package helpers

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRegex     = regexp.MustCompile(`<[^>]*>`)
	commentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	spaceRegex   = regexp.MustCompile(`\s+`)

	// Block boundaries and line breaks separate words once tags are gone.
	breakRegex = regexp.MustCompile(`<br\s*/?>|</(?:p|div|li|h[1-6]|blockquote|tr)>`)
)

// StripHTML removes tags and comments, decodes entities and collapses
// whitespace to single spaces.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = commentRegex.ReplaceAllString(s, "")
	s = breakRegex.ReplaceAllString(s, " ")
	s = tagRegex.ReplaceAllString(s, "")
	return NormalizeWhitespace(html.UnescapeString(s))
}

// IsBlankHTML reports whether s has no text once markup is removed.
func IsBlankHTML(s string) bool {
	return StripHTML(s) == ""
}

// NormalizeWhitespace collapses runs of whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}
