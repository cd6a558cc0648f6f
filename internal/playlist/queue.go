package playlist

import (
	"math/rand/v2"

	"github.com/llehouerou/wrld/internal/catalog"
)

// Queue wraps a Playlist with the current index. The index is always -1
// (nothing open) or a valid position, whatever the sequence of calls.
type Queue struct {
	playlist     *Playlist
	currentIndex int // -1 if nothing open
	generation   uint64
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{
		playlist:     NewPlaylist(),
		currentIndex: -1,
	}
}

// Current returns the open track, or false if none.
func (q *Queue) Current() (catalog.Track, bool) {
	return q.playlist.Track(q.currentIndex)
}

// CurrentIndex returns the index of the open track (-1 if none).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// Generation identifies the latest open. Work started for an older
// generation must not touch state belonging to the current one.
func (q *Queue) Generation() uint64 {
	return q.generation
}

// Open sets the current index. Out-of-range indexes are a no-op and
// return false.
func (q *Queue) Open(index int) (catalog.Track, bool) {
	track, ok := q.playlist.Track(index)
	if !ok {
		return catalog.Track{}, false
	}
	q.currentIndex = index
	q.generation++
	return track, true
}

// Step moves delta positions with wraparound in both directions and opens
// the result. No-op on an empty queue. From -1, Step(1) opens index 0.
func (q *Queue) Step(delta int) (catalog.Track, bool) {
	n := q.playlist.Len()
	if n == 0 {
		return catalog.Track{}, false
	}
	next := ((q.currentIndex+delta)%n + n) % n
	return q.Open(next)
}

// Shuffle permutes the tracks and opens index 0. No-op on an empty queue.
func (q *Queue) Shuffle(rng *rand.Rand) (catalog.Track, bool) {
	if q.playlist.Len() == 0 {
		return catalog.Track{}, false
	}
	q.playlist.Shuffle(rng)
	return q.Open(0)
}

// SetTracks replaces the tracks and re-validates the current index: it
// follows the open track to its new position when still present,
// otherwise it is clamped into range. An empty list resets it to -1.
// Returns true when the open track changed.
func (q *Queue) SetTracks(tracks []catalog.Track) bool {
	prev, hadCurrent := q.Current()
	prevIndex := q.currentIndex
	q.playlist = NewPlaylist(tracks...)

	switch n := q.playlist.Len(); {
	case n == 0:
		q.currentIndex = -1
	case !hadCurrent:
		q.currentIndex = -1
	default:
		if i := q.playlist.IndexOf(prev.ID); i >= 0 {
			q.currentIndex = i
		} else {
			q.currentIndex = min(max(prevIndex, 0), n-1)
		}
	}

	cur, ok := q.Current()
	if ok != hadCurrent || cur.ID != prev.ID {
		q.generation++
		return true
	}
	return false
}

// Clear removes all tracks and resets the index.
func (q *Queue) Clear() {
	q.SetTracks(nil)
}

// Tracks returns all tracks in the queue.
func (q *Queue) Tracks() []catalog.Track {
	return q.playlist.Tracks()
}

// Len returns the number of tracks in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
