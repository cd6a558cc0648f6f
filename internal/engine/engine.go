// Package engine ties the catalog, views, playback, likes, lyrics, and
// artwork together behind one instance that a front end polls.
package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/artwork"
	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/catalogapi"
	"github.com/llehouerou/wrld/internal/likes"
	"github.com/llehouerou/wrld/internal/lyrics"
	"github.com/llehouerou/wrld/internal/metrics"
	"github.com/llehouerou/wrld/internal/playback"
	"github.com/llehouerou/wrld/internal/radio"
	"github.com/llehouerou/wrld/internal/search"
	"github.com/llehouerou/wrld/internal/state"
	"github.com/llehouerou/wrld/internal/views"
)

// API is the remote catalog capability. *catalogapi.Client implements it.
type API interface {
	Songs(ctx context.Context, q catalogapi.SongQuery) ([]gjson.Result, error)
	Eras(ctx context.Context) ([]catalogapi.Era, error)
	Categories(ctx context.Context) ([]catalogapi.Category, error)
	RandomSong(ctx context.Context) (gjson.Result, error)
	StreamURL(path string) string
}

var _ API = (*catalogapi.Client)(nil)

// Engine owns every sub-store. All methods are safe for concurrent use;
// the lock is never held across network I/O.
type Engine struct {
	api        API
	doc        *state.Document
	likes      *likes.Store
	player     *playback.Service
	resolver   *artwork.Resolver
	station    *radio.Station
	lyrics     *lyrics.Source
	normalizer catalog.Normalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger

	pageSize       int
	radioBatchSize int
	deckSize       int

	mu         sync.Mutex
	rng        *rand.Rand
	loaded     bool
	catalog    []catalog.Track
	eras       []catalogapi.Era
	categories []catalogapi.Category
	section    views.Section
	filters    views.Filters
	radio      []catalog.Track
	deck       []catalog.Track
	view       views.View
	index      *search.Index

	// lyric schedule of the open track, keyed by playback generation
	scheduleGen    uint64
	scheduleText   string
	scheduleTimed  bool
	scheduleSynced bool
	schedule       lyrics.Schedule
}

type settings struct {
	media           playback.Media
	searcher        artwork.Searcher
	lyrics          *lyrics.Source
	metrics         *metrics.Metrics
	logger          *zap.Logger
	storageKey      string
	assetBaseURL    string
	pageSize        int
	coverCacheSize  int
	radioBatchSize  int
	radioRecentSize int
	deckSize        int
	rng             *rand.Rand
}

// Option configures an Engine.
type Option func(*settings)

// WithMedia sets the media element driven by playback.
func WithMedia(m playback.Media) Option {
	return func(s *settings) { s.media = m }
}

// WithSearcher sets the artwork searcher used for tracks without covers.
func WithSearcher(searcher artwork.Searcher) Option {
	return func(s *settings) { s.searcher = searcher }
}

// WithLyricsSource enables lyric lookups for tracks without lyrics.
func WithLyricsSource(src *lyrics.Source) Option {
	return func(s *settings) { s.lyrics = src }
}

// WithMetrics records metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStorageKey sets the key the state blob is stored under.
func WithStorageKey(key string) Option {
	return func(s *settings) { s.storageKey = key }
}

// WithAssetBaseURL sets the prefix for relative artwork paths.
func WithAssetBaseURL(u string) Option {
	return func(s *settings) { s.assetBaseURL = u }
}

// WithPageSize sets the number of songs requested on load.
func WithPageSize(n int) Option {
	return func(s *settings) { s.pageSize = n }
}

// WithCoverCacheSize caps the persisted cover cache.
func WithCoverCacheSize(n int) Option {
	return func(s *settings) { s.coverCacheSize = n }
}

// WithRadio sets the radio batch size and the recently-served window.
func WithRadio(batchSize, recentSize int) Option {
	return func(s *settings) {
		s.radioBatchSize = batchSize
		s.radioRecentSize = recentSize
	}
}

// WithDeckSize sets the swipe deck size.
func WithDeckSize(n int) Option {
	return func(s *settings) { s.deckSize = n }
}

// WithRand sets the random source used by shuffle and the swipe deck.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) { s.rng = rng }
}

// New creates an engine over api, persisting into store. The persisted
// blob is read once here; Load fetches the catalog.
func New(api API, store state.Store, opts ...Option) *Engine {
	cfg := settings{
		assetBaseURL:    catalog.DefaultAssetBaseURL,
		pageSize:        catalogapi.DefaultPageSize,
		coverCacheSize:  artwork.DefaultCacheSize,
		radioBatchSize:  radio.DefaultBatchSize,
		radioRecentSize: radio.DefaultRecentSize,
		deckSize:        views.DefaultDeckSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.rng == nil {
		now := uint64(time.Now().UnixNano())
		cfg.rng = rand.New(rand.NewPCG(now, now>>17))
	}

	doc := state.OpenDocument(store, cfg.storageKey)
	blob := doc.Get()
	logger := cfg.logger.Named("engine")
	normalizer := catalog.Normalizer{AssetBaseURL: cfg.assetBaseURL}

	e := &Engine{
		api:            api,
		doc:            doc,
		likes:          likes.New(doc),
		player:         playback.New(cfg.media, api.StreamURL, cfg.logger),
		station:        radio.NewStation(api, normalizer, cfg.radioRecentSize, cfg.logger),
		lyrics:         cfg.lyrics,
		normalizer:     normalizer,
		metrics:        cfg.metrics,
		logger:         logger,
		pageSize:       cfg.pageSize,
		radioBatchSize: cfg.radioBatchSize,
		deckSize:       cfg.deckSize,
		rng:            cfg.rng,
		section:        views.Songs{},
		index:          search.NewIndex(nil),
	}
	e.resolver = artwork.NewResolver(cfg.searcher, blob.CoverCache,
		artwork.WithCacheSize(cfg.coverCacheSize),
		artwork.WithLogger(cfg.logger),
		artwork.WithMetrics(cfg.metrics),
		artwork.OnResolved(e.persistCovers),
	)
	e.restoreLocked(blob)
	return e
}

// restoreLocked applies the persisted section and filters.
func (e *Engine) restoreLocked(blob state.Blob) {
	e.filters = views.Filters{
		Era:      blob.Filters.Era,
		Category: blob.Filters.Category,
		Album:    blob.Filters.Album,
		Mood:     blob.Filters.Mood,
	}
	section, err := views.ParseSection(blob.Section)
	if err != nil {
		e.logger.Warn("ignoring persisted section", zap.String("section", blob.Section), zap.Error(err))
		section = views.Songs{}
	}
	e.section = section
}

func (e *Engine) persistCovers(entries map[string]string) {
	e.doc.UpdateDeferred(func(b *state.Blob) {
		b.CoverCache = entries
	})
}

// Wait blocks until background artwork lookups finish.
func (e *Engine) Wait() {
	e.resolver.Wait()
}

// Document returns the persisted state document.
func (e *Engine) Document() *state.Document {
	return e.doc
}
