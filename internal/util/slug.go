// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

// MaxSlugLength is the longest slug a category or genre may carry.
const MaxSlugLength = 50

var (
	// Matches whitespace and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s/]+`)
	// Matches anything outside the slug alphabet.
	nonSlugRe = regexp.MustCompile(`[^a-z0-9_-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify derives a slug from a display name.
//
// Rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces and slashes with dashes
//  3. Drop characters outside [a-z0-9_-]
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes and cut to MaxSlugLength
//
// Examples:
//
//	"Science Fiction" → "science-fiction"
//	"Film/Noir"       → "film-noir"
//	"  Rock 'n' Roll " → "rock-n-roll"
//	"🎬"               → ""
//
// An empty result means the name has nothing to build a slug from.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonSlugRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}
