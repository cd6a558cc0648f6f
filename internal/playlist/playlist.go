// Package playlist holds the active view's track order and the current
// index into it.
package playlist

import (
	"math/rand/v2"

	"github.com/llehouerou/wrld/internal/catalog"
)

// Playlist holds an ordered collection of tracks.
type Playlist struct {
	tracks []catalog.Track
}

// NewPlaylist creates a playlist holding a copy of tracks.
func NewPlaylist(tracks ...catalog.Track) *Playlist {
	p := &Playlist{tracks: make([]catalog.Track, 0, len(tracks))}
	p.tracks = append(p.tracks, tracks...)
	return p
}

// Tracks returns a copy of all tracks.
func (p *Playlist) Tracks() []catalog.Track {
	result := make([]catalog.Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Track returns the track at index, or false if out of bounds.
func (p *Playlist) Track(index int) (catalog.Track, bool) {
	if index < 0 || index >= len(p.tracks) {
		return catalog.Track{}, false
	}
	return p.tracks[index], true
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// IndexOf returns the position of the track with id, or -1.
func (p *Playlist) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range p.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Shuffle permutes the tracks in place (Fisher-Yates). A nil rng uses the
// global source.
func (p *Playlist) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) { p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i] }
	if rng == nil {
		rand.Shuffle(len(p.tracks), swap)
		return
	}
	rng.Shuffle(len(p.tracks), swap)
}
