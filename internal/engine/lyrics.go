package engine

import (
	"context"
	"math"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/lyrics"
)

// syncScheduleLocked rebuilds the lyric schedule when the open track
// changed since it was last built.
func (e *Engine) syncScheduleLocked() {
	gen := e.player.Generation()
	if gen == e.scheduleGen {
		return
	}
	e.scheduleGen = gen

	track, ok := e.player.Current()
	if !ok {
		e.scheduleText = ""
		e.scheduleTimed = false
		e.scheduleSynced = false
		e.schedule = nil
		return
	}
	d, timed := e.durationLocked(track)
	e.scheduleSynced = false
	e.rebuildScheduleLocked(track.Lyrics, d, timed)
}

// rebuildScheduleLocked splits catalog lyrics evenly. Fetched lyrics keep
// their LRC timestamps.
func (e *Engine) rebuildScheduleLocked(text string, durationSeconds float64, timed bool) {
	e.scheduleText = text
	e.scheduleTimed = timed
	if e.scheduleSynced {
		e.schedule = lyrics.BuildTimedSchedule(text, durationSeconds)
		return
	}
	e.schedule = lyrics.BuildSchedule(text, durationSeconds)
}

// durationLocked prefers the media-reported duration over the catalog's.
func (e *Engine) durationLocked(track catalog.Track) (float64, bool) {
	if d, ok := e.player.Duration(); ok {
		return d, true
	}
	if track.HasDuration && track.DurationSeconds > 0 {
		return track.DurationSeconds, true
	}
	return math.NaN(), false
}

// Schedule returns the lyric schedule of the open track.
func (e *Engine) Schedule() lyrics.Schedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(lyrics.Schedule(nil), e.schedule...)
}

// ActiveLine returns the lyric line active at pos seconds, or -1.
func (e *Engine) ActiveLine(pos float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.schedule.ActiveLine(pos)
}

// FetchLyrics looks lyrics up for the open track when it carries none and
// rebuilds the schedule with them, unless another track was opened in the
// meantime.
func (e *Engine) FetchLyrics(ctx context.Context) (lyrics.Result, error) {
	e.mu.Lock()
	track, ok := e.player.Current()
	gen := e.player.Generation()
	src := e.lyrics
	e.mu.Unlock()

	if !ok {
		return lyrics.Result{Origin: lyrics.OriginNotFound}, nil
	}
	if src == nil {
		if track.Lyrics != "" {
			return lyrics.Result{Text: track.Lyrics, Origin: lyrics.OriginTrack}, nil
		}
		return lyrics.Result{Origin: lyrics.OriginNotFound}, nil
	}

	res, err := src.Fetch(ctx, track)
	if err != nil || res.Text == "" {
		return res, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen == e.player.Generation() && gen == e.scheduleGen && res.Text != e.scheduleText {
		d, timed := e.durationLocked(track)
		e.scheduleSynced = res.Origin != lyrics.OriginTrack
		e.rebuildScheduleLocked(res.Text, d, timed)
	}
	return res, nil
}
