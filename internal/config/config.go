// Package config loads wrld's TOML configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default values applied by the Get*Config accessors.
const (
	DefaultAPIBaseURL      = "https://juicewrldapi.com/juicewrld"
	DefaultAssetBaseURL    = "https://juicewrldapi.com"
	DefaultPageSize        = 80
	DefaultTimeoutSeconds  = 10
	DefaultArtworkProvider = "itunes"
	DefaultCoverCacheSize  = 500
	DefaultRadioBatchSize  = 10
	DefaultRadioRecentSize = 200
	DefaultDeckSize        = 20
	DefaultStorageKey      = "wrld.rebuild.v2"
	DefaultLogLevel        = "info"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxBackups   = 3
)

// Artwork providers.
const (
	ProviderITunes      = "itunes"
	ProviderLastfm      = "lastfm"
	ProviderMusicBrainz = "musicbrainz"
	ProviderChain       = "chain"
	ProviderNone        = "none"
)

type Config struct {
	API     APIConfig     `koanf:"api"`
	Artwork ArtworkConfig `koanf:"artwork"`

	// Last.fm credentials (used by the lastfm and chain artwork providers)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Lyrics  LyricsConfig  `koanf:"lyrics"`
	Radio   RadioConfig   `koanf:"radio"`
	Swipe   SwipeConfig   `koanf:"swipe"`
	State   StateConfig   `koanf:"state"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// APIConfig holds the catalog service settings.
type APIConfig struct {
	BaseURL        string `koanf:"base_url"`
	AssetBaseURL   string `koanf:"asset_base_url"` // prefix for relative artwork paths
	PageSize       int    `koanf:"page_size"`
	TimeoutSeconds int    `koanf:"timeout_seconds"`
}

// ArtworkConfig holds cover lookup settings.
type ArtworkConfig struct {
	Provider  string `koanf:"provider"` // itunes, lastfm, musicbrainz, chain, none
	CacheSize int    `koanf:"cache_size"`
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// LyricsConfig holds lyrics settings.
type LyricsConfig struct {
	Fallback *bool `koanf:"fallback"` // look up lrclib when a track has no lyrics (default: true)
}

// RadioConfig holds radio batch settings.
type RadioConfig struct {
	BatchSize  int `koanf:"batch_size"`  // random picks per batch (default: 10)
	RecentSize int `koanf:"recent_size"` // tracks suppressed from later batches (default: 200)
}

// SwipeConfig holds swipe deck settings.
type SwipeConfig struct {
	DeckSize int `koanf:"deck_size"`
}

// StateConfig holds persistence settings.
type StateConfig struct {
	Path       string `koanf:"path"` // empty means the XDG data dir
	StorageKey string `koanf:"storage_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"` // empty logs to stderr
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Addr string `koanf:"addr"` // empty disables the endpoint
}

// Load reads ~/.config/wrld/config.toml then ./config.toml (last wins).
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles reads the given files in order; missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	cfg.API.AssetBaseURL = strings.TrimSuffix(cfg.API.AssetBaseURL, "/")
	cfg.Artwork.Provider = strings.ToLower(strings.TrimSpace(cfg.Artwork.Provider))

	if cfg.State.Path != "" {
		cfg.State.Path = expandPath(cfg.State.Path)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/wrld/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wrld", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLastfmConfig returns true if Last.fm credentials are configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != ""
}

// GetAPIConfig returns the catalog API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBaseURL
	}
	if cfg.AssetBaseURL == "" {
		cfg.AssetBaseURL = DefaultAssetBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg
}

// Timeout returns the request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetArtworkConfig returns the artwork configuration with defaults applied.
// An unknown provider falls back to the default one.
func (c *Config) GetArtworkConfig() ArtworkConfig {
	cfg := c.Artwork
	switch cfg.Provider {
	case ProviderITunes, ProviderLastfm, ProviderMusicBrainz, ProviderChain, ProviderNone:
	default:
		cfg.Provider = DefaultArtworkProvider
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCoverCacheSize
	}
	return cfg
}

// LyricsFallback reports whether lrclib lookups are enabled.
func (c *Config) LyricsFallback() bool {
	if c.Lyrics.Fallback == nil {
		return true
	}
	return *c.Lyrics.Fallback
}

// GetRadioConfig returns the radio configuration with defaults applied.
func (c *Config) GetRadioConfig() RadioConfig {
	cfg := c.Radio
	if cfg.BatchSize <= 0 || cfg.BatchSize > 50 {
		cfg.BatchSize = DefaultRadioBatchSize
	}
	if cfg.RecentSize <= 0 {
		cfg.RecentSize = DefaultRadioRecentSize
	}
	return cfg
}

// GetSwipeConfig returns the swipe configuration with defaults applied.
func (c *Config) GetSwipeConfig() SwipeConfig {
	cfg := c.Swipe
	if cfg.DeckSize <= 0 {
		cfg.DeckSize = DefaultDeckSize
	}
	return cfg
}

// GetStateConfig returns the persistence configuration with defaults applied.
func (c *Config) GetStateConfig() StateConfig {
	cfg := c.State
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	return cfg
}

// GetLogConfig returns the logging configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = DefaultLogLevel
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultLogMaxBackups
	}
	return cfg
}
