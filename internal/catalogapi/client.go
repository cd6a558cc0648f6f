// Package catalogapi is a client for the remote song catalog.
package catalogapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/llehouerou/wrld/internal/metrics"
)

// ErrRequest matches any non-success catalog response.
var ErrRequest = errors.New("catalog request failed")

const (
	// DefaultBaseURL is the catalog API root.
	DefaultBaseURL = "https://juicewrldapi.com/juicewrld"

	userAgent       = "wrld/1.0 (https://github.com/llehouerou/wrld)"
	downloadRoute   = "/files/download/"
	defaultTimeout  = 10 * time.Second
	maxPayloadBytes = 16 << 20
)

// RequestError is returned when the catalog answers with a non-2xx status.
type RequestError struct {
	Status int
	Path   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d) for %s", e.Status, e.Path)
}

// Is makes errors.Is(err, ErrRequest) true for every RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequest
}

// Client is a catalog API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithMetrics records request outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client rooted at baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StreamURL builds the streaming URL for a track path.
func (c *Client) StreamURL(path string) string {
	if path == "" {
		return ""
	}
	return c.baseURL + downloadRoute + "?path=" + url.QueryEscape(path)
}

// FetchJSON performs a GET on path and returns the raw JSON body.
// Empty parameter values are not sent.
func (c *Client) FetchJSON(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		if v != "" {
			query.Set(k, v)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.CatalogRequest(endpointLabel(path), "error")
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.CatalogRequest(endpointLabel(path), strconv.Itoa(resp.StatusCode))
		return nil, &RequestError{Status: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		c.metrics.CatalogRequest(endpointLabel(path), "error")
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.metrics.CatalogRequest(endpointLabel(path), "ok")
	return body, nil
}

// endpointLabel turns "/songs/" into "songs" for metric labels.
func endpointLabel(path string) string {
	label := strings.Trim(path, "/")
	if label == "" {
		return "root"
	}
	return strings.ReplaceAll(label, "/", "_")
}

// records extracts the record list from either an array or a {results} envelope.
func records(body []byte, field string) []gjson.Result {
	if !gjson.ValidBytes(body) {
		return nil
	}
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Array()
	}
	if v := root.Get(field); v.IsArray() {
		return v.Array()
	}
	return nil
}
