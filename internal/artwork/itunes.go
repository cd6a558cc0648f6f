package artwork

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultITunesURL is the iTunes Search API endpoint.
const DefaultITunesURL = "https://itunes.apple.com/search"

// ITunes searches the iTunes Search API.
type ITunes struct {
	endpoint   string
	httpClient *http.Client
}

// NewITunes creates an iTunes searcher. An empty endpoint uses
// DefaultITunesURL; a nil client gets a 10s timeout.
func NewITunes(endpoint string, httpClient *http.Client) *ITunes {
	if endpoint == "" {
		endpoint = DefaultITunesURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ITunes{endpoint: endpoint, httpClient: httpClient}
}

// Search returns the artwork of the first song result, upscaled to 600px.
func (s *ITunes) Search(ctx context.Context, title, artist string) (string, error) {
	params := url.Values{}
	params.Set("term", strings.TrimSpace(title+" "+artist))
	params.Set("entity", "song")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	art := gjson.GetBytes(body, "results.0.artworkUrl100").String()
	if art == "" {
		return "", ErrNotFound
	}
	return strings.Replace(art, "100x100", "600x600", 1), nil
}
