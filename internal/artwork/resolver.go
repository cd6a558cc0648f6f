package artwork

import (
	"context"
	"errors"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/metrics"
)

// DefaultCacheSize caps the cover cache.
const DefaultCacheSize = 500

const defaultLookupTimeout = 15 * time.Second

// Resolver maps tracks to display URLs. Resolve never blocks: unknown
// covers are searched in the background while a placeholder is returned.
type Resolver struct {
	searcher Searcher
	cache    *lru.Cache[string, string]
	group    singleflight.Group
	logger   *zap.Logger
	metrics  *metrics.Metrics
	timeout  time.Duration

	mu         sync.Mutex
	inflight   map[string]bool
	onResolved func(entries map[string]string)

	wg sync.WaitGroup
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCacheSize sets the cover cache capacity.
func WithCacheSize(n int) Option {
	return func(r *Resolver) {
		if n <= 0 {
			n = DefaultCacheSize
		}
		cache, err := lru.New[string, string](n)
		if err == nil {
			r.cache = cache
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l.Named("artwork")
		}
	}
}

// WithMetrics records lookup outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// WithLookupTimeout bounds each background search.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// OnResolved registers fn to receive the whole cache after each successful
// search, for persistence. fn runs on the lookup goroutine.
func OnResolved(fn func(entries map[string]string)) Option {
	return func(r *Resolver) { r.onResolved = fn }
}

// NewResolver creates a resolver seeded with persisted cache entries. A nil
// searcher never finds anything.
func NewResolver(searcher Searcher, seed map[string]string, opts ...Option) *Resolver {
	if searcher == nil {
		searcher = Chain(nil)
	}
	cache, _ := lru.New[string, string](DefaultCacheSize)
	r := &Resolver{
		searcher: searcher,
		cache:    cache,
		logger:   zap.NewNop(),
		timeout:  defaultLookupTimeout,
		inflight: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	for key, url := range seed {
		if key != "" && url != "" {
			r.cache.Add(key, url)
		}
	}
	r.metrics.SetCoverCacheSize(r.cache.Len())
	return r
}

// Resolve returns a usable display URL for track immediately:
// 1. the track's own artwork
// 2. a cached search result
// 3. a placeholder, while a search runs in the background
// Concurrent calls for the same lookup key start at most one search.
func (r *Resolver) Resolve(track catalog.Track) string {
	if track.CoverURL != "" {
		r.metrics.ArtworkLookup("source")
		return track.CoverURL
	}

	key := track.LookupKey()
	if url, ok := r.cache.Get(key); ok {
		r.metrics.ArtworkLookup("cache")
		return url
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inflight[key] {
		// A search may have finished since the cache check. It caches
		// before leaving inflight, so a second look under the lock is final.
		if url, ok := r.cache.Get(key); ok {
			r.metrics.ArtworkLookup("cache")
			return url
		}
		r.inflight[key] = true
		r.wg.Add(1)
		go r.background(key, track.Title, track.Artist)
	}
	return Placeholder(track.Title, track.Artist)
}

// Lookup resolves track synchronously, sharing any search already running
// for the same key. It returns the placeholder and the search error when
// nothing is found.
func (r *Resolver) Lookup(ctx context.Context, track catalog.Track) (string, error) {
	if track.CoverURL != "" {
		return track.CoverURL, nil
	}
	key := track.LookupKey()
	if url, ok := r.cache.Get(key); ok {
		return url, nil
	}

	ch := r.group.DoChan(key, func() (any, error) {
		return r.search(key, track.Title, track.Artist)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return Placeholder(track.Title, track.Artist), res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return Placeholder(track.Title, track.Artist), ctx.Err()
	}
}

// Cached returns the cached URL for a lookup key.
func (r *Resolver) Cached(key string) (string, bool) {
	return r.cache.Peek(key)
}

// Entries returns a copy of the cache.
func (r *Resolver) Entries() map[string]string {
	keys := r.cache.Keys()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.cache.Peek(k); ok {
			out[k] = v
		}
	}
	return out
}

// Len returns the number of cached covers.
func (r *Resolver) Len() int {
	return r.cache.Len()
}

// Pending reports whether a background search for key is running.
func (r *Resolver) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inflight[key]
}

// Wait blocks until all background searches have finished.
func (r *Resolver) Wait() {
	r.wg.Wait()
}

func (r *Resolver) background(key, title, artist string) {
	defer r.wg.Done()
	defer func() {
		r.mu.Lock()
		delete(r.inflight, key)
		r.mu.Unlock()
	}()

	res := <-r.group.DoChan(key, func() (any, error) {
		return r.search(key, title, artist)
	})
	if res.Err != nil && !errors.Is(res.Err, ErrNotFound) {
		r.logger.Debug("artwork search failed",
			zap.String("title", title),
			zap.String("artist", artist),
			zap.Error(res.Err))
	}
}

// search runs once per key at a time (under the singleflight group). On
// success the result is cached and handed to the persist callback; on
// failure nothing is cached so a later call can retry.
func (r *Resolver) search(key, title, artist string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	url, err := r.searcher.Search(ctx, title, artist)
	switch {
	case errors.Is(err, ErrNotFound) || (err == nil && url == ""):
		r.metrics.ArtworkLookup("search_miss")
		return "", ErrNotFound
	case err != nil:
		r.metrics.ArtworkLookup("search_error")
		return "", err
	}

	r.metrics.ArtworkLookup("search_ok")
	r.cache.Add(key, url)
	r.metrics.SetCoverCacheSize(r.cache.Len())
	if r.onResolved != nil {
		r.onResolved(r.Entries())
	}
	return url, nil
}
