package catalog

import (
	"regexp"
	"strings"
)

var (
	punctuationRe   = regexp.MustCompile(`[^\w\s]`)
	multipleSpaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases s, replaces punctuation with spaces and
// collapses whitespace.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = punctuationRe.ReplaceAllString(s, " ")
	s = multipleSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LookupKey derives the artwork cache key for a title and artist.
func LookupKey(title, artist string) string {
	return NormalizeText(title) + "|" + NormalizeText(artist)
}

// LookupKey returns the artwork cache key for the track.
func (t Track) LookupKey() string {
	return LookupKey(t.Title, t.Artist)
}
