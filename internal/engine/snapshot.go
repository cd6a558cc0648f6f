package engine

import (
	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/errmsg"
	"github.com/llehouerou/wrld/internal/playback"
	"github.com/llehouerou/wrld/internal/views"
)

// Snapshot is a consistent copy of what a front end renders.
type Snapshot struct {
	Section views.Section
	Filters views.Filters
	Tracks  []catalog.Track
	Index   int

	Current    catalog.Track
	HasCurrent bool
	Liked      bool
	Cover      string // display URL; a placeholder while a lookup runs

	State       playback.State
	Duration    float64
	HasDuration bool

	// Status replaces the track list when it is empty.
	Status string
	// Title is the open track's title, or a prompt when none is open.
	Title string
}

// Snapshot returns the current engine state. Cover lookups it triggers
// run in the background.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	snap := Snapshot{
		Section: e.section,
		Filters: e.filters,
		Tracks:  e.player.Tracks(),
		Index:   e.player.CurrentIndex(),
		State:   e.player.State(),
		Status:  e.statusLocked(),
		Title:   errmsg.StatusEmptySelect,
	}
	snap.Current, snap.HasCurrent = e.player.Current()
	if snap.HasCurrent {
		snap.Title = snap.Current.Title
		snap.Liked = e.likes.IsLiked(snap.Current.ID)
		snap.Duration, snap.HasDuration = e.durationLocked(snap.Current)
		if !snap.HasDuration {
			snap.Duration = 0
		}
	}
	e.mu.Unlock()

	if snap.HasCurrent {
		snap.Cover = e.resolver.Resolve(snap.Current)
	}
	return snap
}

// Cover returns the display URL for track without blocking.
func (e *Engine) Cover(track catalog.Track) string {
	return e.resolver.Resolve(track)
}

// statusLocked describes an empty view, or returns "" when there are
// tracks to show.
func (e *Engine) statusLocked() string {
	if !e.loaded {
		return errmsg.StatusLoading
	}
	if e.player.Len() > 0 {
		return ""
	}
	switch e.section.(type) {
	case views.Likes, views.Playlists:
		return errmsg.StatusEmptyLikes
	case views.Radio:
		return errmsg.StatusEmptyRadio
	case views.Swipe:
		return errmsg.StatusEmptyDeck
	}
	if len(e.catalog) == 0 {
		return errmsg.StatusEmptyAPI
	}
	return errmsg.StatusNoMatches
}
