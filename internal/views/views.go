// Package views derives the ordered track list shown for a section.
// Views are rebuilt from scratch on every change and never patched.
package views

import (
	"github.com/llehouerou/wrld/internal/catalog"
)

// Filters are optional equality predicates. An empty field matches all.
type Filters struct {
	Era      string
	Category string
	Album    string
	Mood     string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Match reports whether t satisfies every set filter.
func (f Filters) Match(t catalog.Track) bool {
	return (f.Era == "" || t.Era == f.Era) &&
		(f.Category == "" || t.Category == f.Category) &&
		(f.Album == "" || t.Album == f.Album) &&
		(f.Mood == "" || t.Mood == f.Mood)
}

// Input is everything a view can be derived from.
type Input struct {
	Catalog []catalog.Track
	Section Section
	Filters Filters
	// Likes are the liked snapshots, already in like order.
	Likes []catalog.Track
	// Radio is the current radio batch.
	Radio []catalog.Track
	// Deck is the swipe deck.
	Deck []catalog.Track
}

// View is the ordered track list for one section.
type View struct {
	Section Section
	Tracks  []catalog.Track
}

// Len returns the number of tracks.
func (v View) Len() int {
	return len(v.Tracks)
}

// Build derives the view for in.Section. A nil section builds Songs.
func Build(in Input) View {
	if in.Section == nil {
		in.Section = Songs{}
	}
	tracks := in.Section.build(in)
	if tracks == nil {
		tracks = []catalog.Track{}
	}
	return View{Section: in.Section, Tracks: tracks}
}

// Filter returns the tracks matching f, in source order.
func Filter(tracks []catalog.Track, f Filters) []catalog.Track {
	out := make([]catalog.Track, 0, len(tracks))
	for _, t := range tracks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (Songs) build(in Input) []catalog.Track {
	return Filter(in.Catalog, in.Filters)
}

// GroupName returns the name the Albums section groups t under: its album
// when known, else its era.
func GroupName(t catalog.Track) string {
	if t.Album != "" && t.Album != catalog.DefaultAlbum {
		return t.Album
	}
	if t.Era != "" {
		return t.Era
	}
	return catalog.DefaultEra
}

func (Albums) build(in Input) []catalog.Track {
	seen := make(map[string]bool)
	var out []catalog.Track
	for _, t := range Filter(in.Catalog, in.Filters) {
		group := GroupName(t)
		if seen[group] {
			continue
		}
		seen[group] = true
		t.Title = group
		out = append(out, t)
	}
	return out
}

func (Playlists) build(in Input) []catalog.Track {
	return clone(in.Likes)
}

func (Likes) build(in Input) []catalog.Track {
	return clone(in.Likes)
}

func (Radio) build(in Input) []catalog.Track {
	return dedup(in.Radio)
}

func (Swipe) build(in Input) []catalog.Track {
	return clone(in.Deck)
}

func clone(tracks []catalog.Track) []catalog.Track {
	return append([]catalog.Track(nil), tracks...)
}

func dedup(tracks []catalog.Track) []catalog.Track {
	seen := make(map[string]bool, len(tracks))
	out := make([]catalog.Track, 0, len(tracks))
	for _, t := range tracks {
		key := t.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
