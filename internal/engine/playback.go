package engine

import (
	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/playback"
)

// Open opens the track at index in the current view, starting playback
// when autoplay is set. Out-of-range indexes are a no-op.
func (e *Engine) Open(index int, autoplay bool) (catalog.Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, ok := e.player.Open(index, autoplay)
	e.syncScheduleLocked()
	return track, ok
}

// Next opens the following track, wrapping at the end.
func (e *Engine) Next() (catalog.Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, ok := e.player.Next(true)
	e.syncScheduleLocked()
	return track, ok
}

// Previous opens the preceding track, wrapping at the start.
func (e *Engine) Previous() (catalog.Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, ok := e.player.Previous(true)
	e.syncScheduleLocked()
	return track, ok
}

// Shuffle permutes the current view and opens its first track without
// starting playback. The order lasts until the view is rebuilt.
func (e *Engine) Shuffle() (catalog.Track, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	track, ok := e.player.Shuffle(e.rng)
	e.syncScheduleLocked()
	return track, ok
}

// Toggle plays or pauses. With nothing open, the first track of the view
// is opened and played.
func (e *Engine) Toggle() playback.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.player.Current(); !ok {
		if _, opened := e.player.Open(max(0, e.player.CurrentIndex()), true); opened {
			e.syncScheduleLocked()
		}
		return e.player.State()
	}
	return e.player.Toggle()
}

// Generation returns the playback generation. Media callbacks carry the
// generation they were started for.
func (e *Engine) Generation() uint64 {
	return e.player.Generation()
}

// DurationKnown reports the duration the media element found for the load
// started at generation gen. Stale reports are discarded and return false.
// The lyric schedule is rebuilt unless it was already built against a
// known duration.
func (e *Engine) DurationKnown(gen uint64, durationSeconds float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.player.MediaLoaded(gen, durationSeconds) {
		e.logger.Debug("discarding stale media load", zap.Uint64("generation", gen))
		return false
	}
	if gen != e.scheduleGen || e.scheduleTimed {
		return true
	}
	if d, ok := e.player.Duration(); ok {
		e.rebuildScheduleLocked(e.scheduleText, d, true)
	}
	return true
}

// MediaEnded advances to the next track when the media element finished
// the load started at generation gen.
func (e *Engine) MediaEnded(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.player.Generation() {
		return false
	}
	e.player.Next(true)
	e.syncScheduleLocked()
	return true
}

// MediaFailed reports an asynchronous media error for generation gen.
func (e *Engine) MediaFailed(gen uint64, err error) bool {
	return e.player.MediaFailed(gen, err)
}

// StreamURL returns the streaming URL of track.
func (e *Engine) StreamURL(track catalog.Track) string {
	return e.player.StreamURL(track)
}
