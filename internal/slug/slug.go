// Package slug derives URL-safe page slugs from display names.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Derive lowercases name and collapses every run of non-alphanumeric
// characters into a single hyphen. It is applied on every persist, so a
// renamed page always carries a slug matching its current name.
func Derive(name string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
}
