package engine

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/catalogapi"
	"github.com/llehouerou/wrld/internal/search"
	"github.com/llehouerou/wrld/internal/state"
	"github.com/llehouerou/wrld/internal/views"
)

// Load fetches the filter metadata and the first song page concurrently,
// then rebuilds the view. Failed fetches degrade to empty results; the
// song fetch error is returned after the engine has been updated so the
// caller can report it.
func (e *Engine) Load(ctx context.Context) error {
	var (
		eras       []catalogapi.Era
		categories []catalogapi.Category
		records    []gjson.Result
		songsErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if eras, err = e.api.Eras(gctx); err != nil {
			e.logger.Warn("eras fetch failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if categories, err = e.api.Categories(gctx); err != nil {
			e.logger.Warn("categories fetch failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		records, songsErr = e.api.Songs(gctx, catalogapi.SongQuery{Page: 1, PageSize: e.pageSize})
		if songsErr != nil {
			e.logger.Warn("songs fetch failed", zap.Error(songsErr))
		}
		return nil
	})
	_ = g.Wait()

	tracks := e.normalizer.Normalize(records)
	e.metrics.SetCatalogSize(len(tracks))

	if n, err := e.likes.Refresh(tracks); err != nil {
		e.logger.Warn("like refresh failed", zap.Error(err))
	} else if n > 0 {
		e.logger.Debug("upgraded legacy likes", zap.Int("count", n))
	}

	blob := e.doc.Get()

	e.mu.Lock()
	e.loaded = true
	e.catalog = tracks
	e.index = search.NewIndex(tracks)
	e.eras = eras
	e.categories = categories
	e.deck = views.RestoreDeck(blob.SwipeQueue, tracks)
	e.rebuildLocked()
	e.openFirstLocked()
	e.mu.Unlock()

	e.logger.Info("catalog loaded",
		zap.Int("tracks", len(tracks)),
		zap.Int("eras", len(eras)),
		zap.Int("categories", len(categories)),
	)

	if songsErr != nil {
		return fmt.Errorf("load songs: %w", songsErr)
	}
	return nil
}

// rebuildLocked rebuilds the view from scratch and hands it to playback,
// which re-validates the current index.
func (e *Engine) rebuildLocked() {
	e.view = views.Build(views.Input{
		Catalog: e.catalog,
		Section: e.section,
		Filters: e.filters,
		Likes:   e.likes.Tracks(),
		Radio:   e.radio,
		Deck:    e.deck,
	})
	e.player.SetTracks(e.view.Tracks)
	e.syncScheduleLocked()
}

// openFirstLocked opens the first track without autoplay when nothing is
// open yet.
func (e *Engine) openFirstLocked() {
	if e.player.CurrentIndex() >= 0 || e.view.Len() == 0 {
		return
	}
	e.player.Open(0, false)
	e.syncScheduleLocked()
}

// Catalog returns the loaded catalog.
func (e *Engine) Catalog() []catalog.Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]catalog.Track(nil), e.catalog...)
}

// FilterOptions lists the filter menu values. Eras and categories come from
// the service when it answered and are otherwise derived from the catalog.
type FilterOptions struct {
	Eras       []string
	Categories []catalogapi.Category
	Albums     []string
	Moods      []string
}

// Options returns the filter menu values.
func (e *Engine) Options() FilterOptions {
	e.mu.Lock()
	defer e.mu.Unlock()

	derived := views.Options(e.catalog)
	opts := FilterOptions{
		Albums: derived.Albums,
		Moods:  derived.Moods,
	}
	if len(e.eras) > 0 {
		for _, era := range e.eras {
			opts.Eras = append(opts.Eras, era.Name)
		}
	} else {
		opts.Eras = derived.Eras
	}
	if len(e.categories) > 0 {
		opts.Categories = append(opts.Categories, e.categories...)
	} else {
		for _, c := range derived.Categories {
			opts.Categories = append(opts.Categories, catalogapi.Category{Label: c, Value: c})
		}
	}
	return opts
}

func toStateFilters(f views.Filters) state.Filters {
	return state.Filters{Era: f.Era, Category: f.Category, Album: f.Album, Mood: f.Mood}
}

// Search ranks the catalog against query, ignoring the active section and
// filters.
func (e *Engine) Search(query string, limit int) []search.Match {
	e.mu.Lock()
	index := e.index
	e.mu.Unlock()
	return index.Search(query, limit)
}
