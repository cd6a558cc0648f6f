// Package likes keeps the listener's liked tracks as snapshots inside the
// persisted state blob.
package likes

import (
	"sort"
	"time"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/state"
)

// Store toggles and lists likes. Every mutation is persisted immediately.
type Store struct {
	doc *state.Document
	now func() time.Time
}

// New creates a like store over doc.
func New(doc *state.Document) *Store {
	return &Store{doc: doc, now: time.Now}
}

// IsLiked reports whether the track id is liked.
func (s *Store) IsLiked(id string) bool {
	var liked bool
	s.doc.View(func(b *state.Blob) {
		_, liked = b.Likes[id]
	})
	return liked
}

// Toggle likes the track if it is not liked, unlikes it otherwise.
// Returns the new like status (true = now liked). The in-memory flip is
// kept even when the save fails.
func (s *Store) Toggle(t catalog.Track) (bool, error) {
	if t.ID == "" {
		return false, nil
	}
	var liked bool
	err := s.doc.Update(func(b *state.Blob) {
		if _, ok := b.Likes[t.ID]; ok {
			delete(b.Likes, t.ID)
			return
		}
		b.Likes[t.ID] = state.LikedTrack{Track: t, LikedAt: s.now().UTC()}
		liked = true
	})
	return liked, err
}

// IDs returns the liked ids as a set.
func (s *Store) IDs() map[string]bool {
	ids := make(map[string]bool)
	s.doc.View(func(b *state.Blob) {
		for id := range b.Likes {
			ids[id] = true
		}
	})
	return ids
}

// Len returns the number of likes.
func (s *Store) Len() int {
	var n int
	s.doc.View(func(b *state.Blob) { n = len(b.Likes) })
	return n
}

// Entries returns the likes ordered by like time, then id.
func (s *Store) Entries() []state.LikedTrack {
	var entries []state.LikedTrack
	s.doc.View(func(b *state.Blob) {
		entries = make([]state.LikedTrack, 0, len(b.Likes))
		for _, like := range b.Likes {
			entries = append(entries, like)
		}
	})
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.LikedAt.Equal(b.LikedAt) {
			return a.LikedAt.Before(b.LikedAt)
		}
		return a.Track.ID < b.Track.ID
	})
	return entries
}

// Tracks returns the liked track snapshots in Entries order.
func (s *Store) Tracks() []catalog.Track {
	entries := s.Entries()
	tracks := make([]catalog.Track, len(entries))
	for i, e := range entries {
		tracks[i] = e.Track
	}
	return tracks
}

// Refresh replaces id-only snapshots left by older blobs with the full
// track from the catalog. Likes the catalog doesn't know stay as they are.
// Returns the number of upgraded entries.
func (s *Store) Refresh(tracks []catalog.Track) (int, error) {
	byID := make(map[string]catalog.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	var upgraded int
	s.doc.View(func(b *state.Blob) {
		for id, like := range b.Likes {
			if _, ok := byID[id]; like.Legacy && ok {
				upgraded++
			}
		}
	})
	if upgraded == 0 {
		return 0, nil
	}

	err := s.doc.Update(func(b *state.Blob) {
		for id, like := range b.Likes {
			t, ok := byID[id]
			if !like.Legacy || !ok {
				continue
			}
			like.Track = t
			like.Legacy = false
			b.Likes[id] = like
		}
	})
	return upgraded, err
}
