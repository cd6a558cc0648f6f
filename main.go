package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/artwork"
	"github.com/llehouerou/wrld/internal/catalogapi"
	"github.com/llehouerou/wrld/internal/cli"
	"github.com/llehouerou/wrld/internal/config"
	"github.com/llehouerou/wrld/internal/engine"
	"github.com/llehouerou/wrld/internal/errmsg"
	"github.com/llehouerou/wrld/internal/lastfm"
	"github.com/llehouerou/wrld/internal/logging"
	"github.com/llehouerou/wrld/internal/lrclib"
	"github.com/llehouerou/wrld/internal/lyrics"
	"github.com/llehouerou/wrld/internal/metrics"
	"github.com/llehouerou/wrld/internal/musicbrainz"
	"github.com/llehouerou/wrld/internal/state"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	logger, flush, err := logging.New(cfg.GetLogConfig(), os.Stderr)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	defer flush()

	stateCfg := cfg.GetStateConfig()
	statePath := stateCfg.Path
	if statePath == "" {
		if statePath, err = state.DefaultPath(); err != nil {
			return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
		}
	}
	store, err := state.Open(statePath, logger)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStateLoad, err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing state store", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	if addr := cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := m.Serve(ctx, addr); err != nil {
				logger.Warn("metrics server stopped", zap.String("addr", addr), zap.Error(err))
			}
		}()
	}

	apiCfg := cfg.GetAPIConfig()
	api := catalogapi.New(apiCfg.BaseURL,
		catalogapi.WithTimeout(apiCfg.Timeout()),
		catalogapi.WithMetrics(m),
	)

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithMetrics(m),
		engine.WithStorageKey(stateCfg.StorageKey),
		engine.WithAssetBaseURL(apiCfg.AssetBaseURL),
		engine.WithPageSize(apiCfg.PageSize),
		engine.WithCoverCacheSize(cfg.GetArtworkConfig().CacheSize),
		engine.WithRadio(cfg.GetRadioConfig().BatchSize, cfg.GetRadioConfig().RecentSize),
		engine.WithDeckSize(cfg.GetSwipeConfig().DeckSize),
		engine.WithSearcher(newSearcher(cfg, logger)),
	}
	if cfg.LyricsFallback() {
		src := lyrics.NewSource(lrclib.New(), lyrics.DefaultCacheDir(), logger)
		opts = append(opts, engine.WithLyricsSource(src))
	}

	e := engine.New(api, store, opts...)
	app := cli.NewApp(e, os.Stdout, os.Stderr, apiCfg.Timeout()*3)
	return app.Command().ExecuteContext(ctx)
}

// newSearcher builds the artwork searcher for the configured provider.
func newSearcher(cfg *config.Config, logger *zap.Logger) artwork.Searcher {
	itunes := artwork.NewITunes("", nil)
	mb := artwork.NewMusicBrainz(musicbrainz.NewClient())

	var fm artwork.Searcher
	if cfg.HasLastfmConfig() {
		fm = artwork.NewLastFM(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret))
	}

	switch cfg.GetArtworkConfig().Provider {
	case config.ProviderNone:
		return nil
	case config.ProviderMusicBrainz:
		return mb
	case config.ProviderLastfm:
		if fm == nil {
			logger.Warn("lastfm artwork provider needs lastfm.api_key; using itunes")
			return itunes
		}
		return fm
	case config.ProviderChain:
		chain := artwork.Chain{itunes}
		if fm != nil {
			chain = append(chain, fm)
		}
		return append(chain, mb)
	default:
		return itunes
	}
}
