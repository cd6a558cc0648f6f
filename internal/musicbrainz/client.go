// Package musicbrainz finds release artwork through MusicBrainz recording
// search and the Cover Art Archive.
package musicbrainz

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL         = "https://musicbrainz.org/ws/2"
	DefaultCoverArtBaseURL = "https://coverartarchive.org"

	userAgent    = "wrld/0.1 (https://github.com/llehouerou/wrld)"
	rateLimitDur = time.Second // MusicBrainz requires 1 request per second
	searchLimit  = 5
)

// Recording is a recording search hit.
type Recording struct {
	ID         string
	Title      string
	Artist     string
	Score      int
	ReleaseIDs []string
}

// Client provides access to the MusicBrainz API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	coverArtURL string
	interval    time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs points the client at other MusicBrainz and Cover Art
// Archive roots.
func WithBaseURLs(api, coverArt string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(api, "/")
		c.coverArtURL = strings.TrimSuffix(coverArt, "/")
	}
}

// WithRateLimit sets the minimum delay between requests.
func WithRateLimit(d time.Duration) Option {
	return func(c *Client) { c.interval = d }
}

// NewClient creates a new MusicBrainz API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     DefaultBaseURL,
		coverArtURL: DefaultCoverArtBaseURL,
		interval:    rateLimitDur,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchRecordings searches recordings by title and artist, best match
// first.
func (c *Client) SearchRecordings(ctx context.Context, title, artist string) ([]Recording, error) {
	query := fmt.Sprintf("recording:%q", title)
	if artist != "" {
		query += fmt.Sprintf(" AND artist:%q", artist)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", fmt.Sprint(searchLimit))

	body, err := c.get(ctx, c.baseURL+"/recording?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var recordings []Recording
	gjson.GetBytes(body, "recordings").ForEach(func(_, r gjson.Result) bool {
		rec := Recording{
			ID:     r.Get("id").String(),
			Title:  r.Get("title").String(),
			Artist: extractArtist(r.Get("artist-credit")),
			Score:  int(r.Get("score").Int()),
		}
		r.Get("releases.#.id").ForEach(func(_, id gjson.Result) bool {
			rec.ReleaseIDs = append(rec.ReleaseIDs, id.String())
			return true
		})
		recordings = append(recordings, rec)
		return true
	})
	return recordings, nil
}

// CoverArtURL returns the 500px front cover URL of a release.
func (c *Client) CoverArtURL(releaseID string) string {
	return fmt.Sprintf("%s/release/%s/front-500", c.coverArtURL, releaseID)
}

// HasCoverArt reports whether the Cover Art Archive holds a front cover for
// the release. 404 means no cover, not an error.
func (c *Client) HasCoverArt(ctx context.Context, releaseID string) (bool, error) {
	if err := c.waitForRateLimit(ctx); err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.CoverArtURL(releaseID), http.NoBody)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode < 400:
		return true, nil
	default:
		return false, fmt.Errorf("API returned status %d", resp.StatusCode)
	}
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	if err := c.waitForRateLimit(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

// waitForRateLimit ensures we don't exceed MusicBrainz rate limits.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := c.interval - time.Since(c.lastRequest); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	c.lastRequest = time.Now()
	return nil
}

// extractArtist joins an artist-credit list the way MusicBrainz displays
// it, honoring join phrases.
func extractArtist(credits gjson.Result) string {
	var b strings.Builder
	credits.ForEach(func(_, credit gjson.Result) bool {
		name := credit.Get("name").String()
		if name == "" {
			name = credit.Get("artist.name").String()
		}
		b.WriteString(name)
		b.WriteString(credit.Get("joinphrase").String())
		return true
	})
	return b.String()
}
