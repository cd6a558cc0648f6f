package artwork

import (
	"context"

	"github.com/llehouerou/wrld/internal/lastfm"
)

// TrackImager is the Last.fm call the LastFM searcher needs.
type TrackImager interface {
	TrackImages(artist, track string) ([]lastfm.Image, error)
}

// LastFM searches Last.fm track info for album art.
type LastFM struct {
	client TrackImager
}

// NewLastFM creates a Last.fm searcher.
func NewLastFM(client TrackImager) *LastFM {
	return &LastFM{client: client}
}

// Search returns the largest album image of the track. The Last.fm client
// is not context aware; ctx is only checked before the call.
func (s *LastFM) Search(ctx context.Context, title, artist string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	images, err := s.client.TrackImages(artist, title)
	if err != nil {
		return "", err
	}
	if url := lastfm.Largest(images); url != "" {
		return url, nil
	}
	return "", ErrNotFound
}
