// Package search ranks catalog tracks against a free-text query using
// trigram coverage.
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/llehouerou/wrld/internal/catalog"
)

// minCoverage is the share of a query word's trigrams a track must contain.
const minCoverage = 0.4

// Match is a ranked search hit.
type Match struct {
	Track catalog.Track
	Score float64
}

// Index holds the trigram sets of a track list.
type Index struct {
	tracks   []catalog.Track
	text     []string
	trigrams []map[string]struct{}
}

// NewIndex indexes the title, artist, album, and era of each track.
func NewIndex(tracks []catalog.Track) *Index {
	x := &Index{
		tracks:   tracks,
		text:     make([]string, len(tracks)),
		trigrams: make([]map[string]struct{}, len(tracks)),
	}
	for i, t := range tracks {
		text := catalog.NormalizeText(strings.Join([]string{t.Title, t.Artist, t.Album, t.Era}, " "))
		x.text[i] = text
		x.trigrams[i] = trigrams(text)
	}
	return x
}

// Len returns the number of indexed tracks.
func (x *Index) Len() int {
	return len(x.tracks)
}

// Search returns the tracks matching every word of query, best first;
// ties keep catalog order. An empty query matches everything with a zero
// score. limit <= 0 means no limit.
func (x *Index) Search(query string, limit int) []Match {
	words := strings.Fields(catalog.NormalizeText(query))

	var matches []Match
	if len(words) == 0 {
		matches = make([]Match, 0, len(x.tracks))
		for _, t := range x.tracks {
			matches = append(matches, Match{Track: t})
		}
	} else {
		wordTrigrams := make([]map[string]struct{}, len(words))
		for i, w := range words {
			wordTrigrams[i] = trigrams(w)
		}
		for i := range x.tracks {
			if score := x.score(i, words, wordTrigrams); score > 0 {
				matches = append(matches, Match{Track: x.tracks[i], Score: score})
			}
		}
		slices.SortStableFunc(matches, func(a, b Match) int {
			return cmp.Compare(b.Score, a.Score)
		})
	}

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// score averages per-word similarity. Any word that fails to match zeroes
// the score.
func (x *Index) score(i int, words []string, wordTrigrams []map[string]struct{}) float64 {
	text := x.text[i]
	total := 0.0
	for j, w := range words {
		// short words: substring only
		if len([]rune(w)) <= 2 {
			if !strings.Contains(text, w) {
				return 0
			}
			total++
			continue
		}

		sim := coverage(wordTrigrams[j], x.trigrams[i])
		if sim < minCoverage {
			return 0
		}
		if strings.Contains(text, w) {
			sim += 0.5
		}
		total += sim
	}
	return total / float64(len(words))
}

// trigrams returns the trigram set of s, padded so prefixes and suffixes
// produce their own trigrams.
func trigrams(s string) map[string]struct{} {
	if s == "" {
		return nil
	}
	runes := []rune("  " + s + "  ")
	set := make(map[string]struct{}, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		tri := string(runes[i : i+3])
		if strings.TrimSpace(tri) != "" {
			set[tri] = struct{}{}
		}
	}
	return set
}

// coverage is |query ∩ item| / |query|.
func coverage(query, item map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	hits := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(query))
}
