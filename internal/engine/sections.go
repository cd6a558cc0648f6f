package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/state"
	"github.com/llehouerou/wrld/internal/views"
)

// ErrNoTrack is returned when an operation needs a track that is not in
// the current view.
var ErrNoTrack = errors.New("no such track in view")

// SetSection switches the navigation section and persists it. Entering
// the swipe section deals a deck when none is held.
func (e *Engine) SetSection(s views.Section) error {
	if s == nil {
		s = views.Songs{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.section = s
	dealt := false
	if _, ok := s.(views.Swipe); ok && len(e.deck) == 0 {
		e.deck = views.Deal(e.catalog, e.deckSize, e.rng)
		dealt = true
	}
	err := e.doc.Update(func(b *state.Blob) {
		b.Section = s.Name()
		if dealt {
			b.SwipeQueue = views.DeckIDs(e.deck)
		}
	})
	e.rebuildLocked()
	e.openFirstLocked()
	if err != nil {
		return fmt.Errorf("save section: %w", err)
	}
	return nil
}

// Section returns the current section.
func (e *Engine) Section() views.Section {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.section
}

// SetFilters replaces the view filters and persists them.
func (e *Engine) SetFilters(f views.Filters) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filters = f
	err := e.doc.Update(func(b *state.Blob) {
		b.Filters = toStateFilters(f)
	})
	e.rebuildLocked()
	e.openFirstLocked()
	if err != nil {
		return fmt.Errorf("save filters: %w", err)
	}
	return nil
}

// ClearFilters resets every filter to match-all.
func (e *Engine) ClearFilters() error {
	return e.SetFilters(views.Filters{})
}

// Filters returns the active filters.
func (e *Engine) Filters() views.Filters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters
}

// ToggleLike flips the like of the track at index in the current view and
// returns whether it is now liked.
func (e *Engine) ToggleLike(index int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleLikeLocked(index)
}

// ToggleCurrentLike flips the like of the open track.
func (e *Engine) ToggleCurrentLike() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.toggleLikeLocked(e.player.CurrentIndex())
}

func (e *Engine) toggleLikeLocked(index int) (bool, error) {
	tracks := e.player.Tracks()
	if index < 0 || index >= len(tracks) {
		return false, ErrNoTrack
	}
	liked, err := e.likes.Toggle(e.catalogTrackLocked(tracks[index]))
	if err != nil {
		return liked, fmt.Errorf("toggle like: %w", err)
	}
	switch e.section.(type) {
	case views.Likes, views.Playlists:
		e.rebuildLocked()
	}
	return liked, nil
}

// catalogTrackLocked returns the catalog entry behind a view row. Album rows
// carry their group name as title, so likes must snapshot the real track.
// Tracks outside the catalog, such as radio picks, are returned as is.
func (e *Engine) catalogTrackLocked(t catalog.Track) catalog.Track {
	for _, c := range e.catalog {
		if c.ID == t.ID {
			return c
		}
	}
	return t
}

// IsLiked reports whether the track with id is liked.
func (e *Engine) IsLiked(id string) bool {
	return e.likes.IsLiked(id)
}

// Likes returns the like entries ordered by like time.
func (e *Engine) Likes() []state.LikedTrack {
	return e.likes.Entries()
}

// FillRadio draws a new radio batch. The view is rebuilt when the radio
// section is showing.
func (e *Engine) FillRadio(ctx context.Context) []catalog.Track {
	batch := e.station.Fill(ctx, e.radioBatchSize)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.radio = batch
	if _, ok := e.section.(views.Radio); ok {
		e.rebuildLocked()
		e.openFirstLocked()
	}
	e.logger.Debug("radio batch", zap.Int("tracks", len(batch)))
	return append([]catalog.Track(nil), batch...)
}

// DealDeck replaces the swipe deck with a fresh shuffle of the playable
// catalog and persists it.
func (e *Engine) DealDeck() ([]catalog.Track, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.deck = views.Deal(e.catalog, e.deckSize, e.rng)
	err := e.doc.Update(func(b *state.Blob) {
		b.SwipeQueue = views.DeckIDs(e.deck)
	})
	if _, ok := e.section.(views.Swipe); ok {
		e.rebuildLocked()
		e.openFirstLocked()
	}
	deck := append([]catalog.Track(nil), e.deck...)
	if err != nil {
		return deck, fmt.Errorf("save deck: %w", err)
	}
	return deck, nil
}
