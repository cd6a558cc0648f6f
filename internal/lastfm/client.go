// Package lastfm wraps the Last.fm API calls used for artwork lookup.
package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNoCredentials is returned when no API key is configured.
var ErrNoCredentials = errors.New("last.fm api key not configured")

// Client wraps the Last.fm API.
type Client struct {
	api    *lastfm.Api
	apiKey string
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api:    lastfm.New(apiKey, apiSecret),
		apiKey: apiKey,
	}
}

// TrackImages returns the album images Last.fm has for a track.
func (c *Client) TrackImages(artist, track string) ([]Image, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredentials
	}

	params := lastfm.P{
		"artist":      artist,
		"track":       track,
		"autocorrect": 1,
	}

	result, err := c.api.Track.GetInfo(params)
	if err != nil {
		return nil, fmt.Errorf("get track info: %w", err)
	}

	images := make([]Image, 0, len(result.Album.Images))
	for _, img := range result.Album.Images {
		images = append(images, Image{Size: img.Size, URL: img.Url})
	}
	return images, nil
}
