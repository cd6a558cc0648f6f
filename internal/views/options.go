package views

import (
	"sort"

	"github.com/llehouerou/wrld/internal/catalog"
)

// FilterOptions are the distinct values offered by the filter menus.
type FilterOptions struct {
	Eras       []string
	Categories []string
	Albums     []string
	Moods      []string
}

// Options collects the distinct non-empty filter values present in tracks,
// each list sorted.
func Options(tracks []catalog.Track) FilterOptions {
	return FilterOptions{
		Eras:       distinct(tracks, func(t catalog.Track) string { return t.Era }),
		Categories: distinct(tracks, func(t catalog.Track) string { return t.Category }),
		Albums:     distinct(tracks, func(t catalog.Track) string { return t.Album }),
		Moods:      distinct(tracks, func(t catalog.Track) string { return t.Mood }),
	}
}

func distinct(tracks []catalog.Track, field func(catalog.Track) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range tracks {
		v := field(t)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
