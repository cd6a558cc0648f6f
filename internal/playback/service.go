// Package playback drives the media element from the active queue.
package playback

import (
	"math"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/playlist"
)

// StreamURLFunc maps a track path to a streaming URL.
type StreamURLFunc func(path string) string

// Service owns the queue and the media element. It is safe for
// concurrent use.
type Service struct {
	mu sync.Mutex

	media     Media
	queue     *playlist.Queue
	streamURL StreamURLFunc
	logger    *zap.Logger

	state       State
	loadedGen   uint64
	duration    float64
	hasDuration bool
}

// New creates a playback service. A nil media uses NopMedia.
func New(media Media, streamURL StreamURLFunc, logger *zap.Logger) *Service {
	if media == nil {
		media = NopMedia{}
	}
	if streamURL == nil {
		streamURL = func(path string) string { return path }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		media:     media,
		queue:     playlist.NewQueue(),
		streamURL: streamURL,
		logger:    logger.Named("playback"),
	}
}

// Open opens the track at index, loading it into the media element when
// playable, and starts playback if autoplay is set. Out-of-range indexes
// are a no-op.
func (s *Service) Open(index int, autoplay bool) (catalog.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.queue.Open(index)
	if !ok {
		return catalog.Track{}, false
	}
	s.loadCurrentLocked(track, autoplay)
	return track, true
}

// Next opens the following track, wrapping to the first.
func (s *Service) Next(autoplay bool) (catalog.Track, bool) {
	return s.step(1, autoplay)
}

// Previous opens the preceding track, wrapping to the last.
func (s *Service) Previous(autoplay bool) (catalog.Track, bool) {
	return s.step(-1, autoplay)
}

func (s *Service) step(delta int, autoplay bool) (catalog.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.queue.Step(delta)
	if !ok {
		return catalog.Track{}, false
	}
	s.loadCurrentLocked(track, autoplay)
	return track, true
}

// Shuffle permutes the queue and opens its first track without autoplay.
func (s *Service) Shuffle(rng *rand.Rand) (catalog.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.queue.Shuffle(rng)
	if !ok {
		return catalog.Track{}, false
	}
	s.loadCurrentLocked(track, false)
	return track, true
}

// SetTracks replaces the queue contents and re-validates the index. When
// that lands on a different track, it is loaded without autoplay.
func (s *Service) SetTracks(tracks []catalog.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.SetTracks(tracks) {
		return
	}
	if track, ok := s.queue.Current(); ok {
		s.loadCurrentLocked(track, false)
		return
	}
	if s.state == StatePlaying {
		_ = s.media.Pause()
	}
	s.state = StateStopped
	s.resetDurationLocked()
}

// Toggle pauses when playing and plays otherwise. It does nothing when no
// playable track is open.
func (s *Service) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	track, ok := s.queue.Current()
	if !ok || !track.Playable() {
		return s.state
	}
	if s.state == StatePlaying {
		if err := s.media.Pause(); err != nil {
			s.logger.Warn("pause failed", zap.String("id", track.ID), zap.Error(err))
		}
		s.state = StatePaused
		return s.state
	}
	s.playLocked(track)
	return s.state
}

// MediaLoaded records the duration reported by the media element for the
// load started at generation gen. A late report for an older generation is
// discarded and false is returned.
func (s *Service) MediaLoaded(gen uint64, durationSeconds float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.queue.Generation() || gen != s.loadedGen {
		return false
	}
	if math.IsNaN(durationSeconds) || math.IsInf(durationSeconds, 0) || durationSeconds <= 0 {
		return true
	}
	s.duration = durationSeconds
	s.hasDuration = true
	return true
}

// MediaFailed reports an asynchronous playback error for generation gen.
// Stale reports are discarded.
func (s *Service) MediaFailed(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.queue.Generation() {
		return false
	}
	s.logger.Warn("media error", zap.Uint64("generation", gen), zap.Error(err))
	if s.state == StatePlaying {
		s.state = StatePaused
	}
	return true
}

// State returns the playback state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the open track.
func (s *Service) Current() (catalog.Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Current()
}

// CurrentIndex returns the open index, -1 if none.
func (s *Service) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.CurrentIndex()
}

// Generation returns the generation of the latest open.
func (s *Service) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Generation()
}

// Duration returns the media duration, if the media element reported one
// for the open track.
func (s *Service) Duration() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration, s.hasDuration
}

// Tracks returns the queue contents.
func (s *Service) Tracks() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// Len returns the queue length.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// StreamURL returns the streaming URL of track.
func (s *Service) StreamURL(track catalog.Track) string {
	if !track.Playable() {
		return ""
	}
	return s.streamURL(track.Path)
}

func (s *Service) loadCurrentLocked(track catalog.Track, autoplay bool) {
	s.resetDurationLocked()
	s.loadedGen = s.queue.Generation()

	if !track.Playable() {
		if s.state == StatePlaying {
			_ = s.media.Pause()
		}
		s.state = StateStopped
		return
	}

	if err := s.media.Load(s.streamURL(track.Path)); err != nil {
		s.logger.Warn("media load failed", zap.String("id", track.ID), zap.Error(err))
		s.state = StatePaused
		return
	}
	s.state = StatePaused
	if autoplay {
		s.playLocked(track)
	}
}

func (s *Service) playLocked(track catalog.Track) {
	if err := s.media.Play(); err != nil {
		s.logger.Warn("play failed", zap.String("id", track.ID), zap.Error(err))
		s.state = StatePaused
		return
	}
	s.state = StatePlaying
}

func (s *Service) resetDurationLocked() {
	s.duration = 0
	s.hasDuration = false
}
