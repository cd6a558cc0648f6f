package views

import (
	"math/rand/v2"

	"github.com/llehouerou/wrld/internal/catalog"
)

// DefaultDeckSize is the number of cards dealt into a swipe deck.
const DefaultDeckSize = 20

// Deal draws up to size playable tracks from pool in random order.
// The deck ignores filters.
func Deal(pool []catalog.Track, size int, rng *rand.Rand) []catalog.Track {
	if size <= 0 {
		size = DefaultDeckSize
	}
	playable := make([]catalog.Track, 0, len(pool))
	for _, t := range pool {
		if t.Playable() {
			playable = append(playable, t)
		}
	}
	shuffle(playable, rng)
	if len(playable) > size {
		playable = playable[:size]
	}
	return playable
}

// RestoreDeck rebuilds a persisted deck from its ids. Ids the catalog no
// longer has are dropped; order is kept.
func RestoreDeck(ids []string, pool []catalog.Track) []catalog.Track {
	byID := make(map[string]catalog.Track, len(pool))
	for _, t := range pool {
		byID[t.ID] = t
	}
	deck := make([]catalog.Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			deck = append(deck, t)
		}
	}
	return deck
}

// DeckIDs returns the ids of deck, for persistence.
func DeckIDs(deck []catalog.Track) []string {
	ids := make([]string, len(deck))
	for i, t := range deck {
		ids[i] = t.ID
	}
	return ids
}

func shuffle(tracks []catalog.Track, rng *rand.Rand) {
	swap := func(i, j int) { tracks[i], tracks[j] = tracks[j], tracks[i] }
	if rng == nil {
		rand.Shuffle(len(tracks), swap)
		return
	}
	rng.Shuffle(len(tracks), swap)
}
