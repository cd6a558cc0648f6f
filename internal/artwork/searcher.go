// Package artwork resolves a display URL for a track's cover without ever
// blocking the caller.
package artwork

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Searcher that has no image for the track.
var ErrNotFound = errors.New("artwork not found")

// Searcher finds a cover image URL for a title and artist.
type Searcher interface {
	Search(ctx context.Context, title, artist string) (string, error)
}

// SearcherFunc adapts a function to Searcher.
type SearcherFunc func(ctx context.Context, title, artist string) (string, error)

func (f SearcherFunc) Search(ctx context.Context, title, artist string) (string, error) {
	return f(ctx, title, artist)
}

// Chain tries each searcher in order and returns the first hit.
type Chain []Searcher

func (c Chain) Search(ctx context.Context, title, artist string) (string, error) {
	var errs []error
	for _, s := range c {
		url, err := s.Search(ctx, title, artist)
		if err == nil && url != "" {
			return url, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) > 0 {
		return "", errors.Join(errs...)
	}
	return "", ErrNotFound
}
