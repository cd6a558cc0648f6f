package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"go.uber.org/zap"

	"github.com/llehouerou/wrld/internal/catalog"
	"github.com/llehouerou/wrld/internal/lrclib"
)

// Origins reported by Source.Fetch.
const (
	OriginTrack    = "track"
	OriginCache    = "cache"
	OriginAPI      = "api"
	OriginNotFound = "not_found"
)

// Fetcher looks lyrics up remotely.
type Fetcher interface {
	Get(ctx context.Context, artist, title string, durationSeconds float64) (*lrclib.Result, error)
}

// Source provides lyric text from the track itself, the on-disk cache, or
// lrclib.
type Source struct {
	fetcher  Fetcher
	cacheDir string
	logger   *zap.Logger
}

// NewSource creates a lyrics source. A nil fetcher disables remote lookup;
// an empty cacheDir disables the cache.
func NewSource(fetcher Fetcher, cacheDir string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{fetcher: fetcher, cacheDir: cacheDir, logger: logger.Named("lyrics")}
}

// DefaultCacheDir returns the XDG cache directory for lyrics.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "wrld", "lyrics")
}

// Result is the outcome of a fetch.
type Result struct {
	Text   string
	Origin string
}

// Fetch returns lyric text for track, trying in order:
// 1. the catalog's own lyrics
// 2. the cache
// 3. lrclib (one attempt; the result is cached)
// Not finding lyrics is not an error.
func (s *Source) Fetch(ctx context.Context, track catalog.Track) (Result, error) {
	if strings.TrimSpace(track.Lyrics) != "" {
		return Result{Text: track.Lyrics, Origin: OriginTrack}, nil
	}
	if track.Title == "" || track.Title == catalog.DefaultTitle {
		return Result{Origin: OriginNotFound}, nil
	}

	if text, err := s.loadCache(track.Artist, track.Title); err == nil && text != "" {
		return Result{Text: text, Origin: OriginCache}, nil
	}

	if s.fetcher == nil {
		return Result{Origin: OriginNotFound}, nil
	}

	var duration float64
	if track.HasDuration {
		duration = track.DurationSeconds
	}
	res, err := s.fetcher.Get(ctx, track.Artist, track.Title, duration)
	if errors.Is(err, lrclib.ErrNotFound) {
		return Result{Origin: OriginNotFound}, nil
	}
	if err != nil {
		return Result{Origin: OriginNotFound}, err
	}

	text := res.Text()
	if err := s.saveCache(track.Artist, track.Title, text); err != nil {
		s.logger.Debug("lyrics cache write failed", zap.String("title", track.Title), zap.Error(err))
	}
	return Result{Text: text, Origin: OriginAPI}, nil
}

func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

func (s *Source) loadCache(artist, title string) (string, error) {
	path := s.cachePath(artist, title)
	if path == "" {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Source) saveCache(artist, title, text string) error {
	path := s.cachePath(artist, title)
	if path == "" || text == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o600)
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
