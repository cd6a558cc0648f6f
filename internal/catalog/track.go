// Package catalog holds the canonical track model and the normalizer that
// turns inconsistently shaped catalog records into it.
package catalog

import (
	"fmt"
	"math"
	"strings"
)

// Field defaults applied when a record omits a value.
const (
	DefaultTitle  = "Untitled"
	DefaultArtist = "Unknown Artist"
	DefaultEra    = "Unknown era"
	DefaultAlbum  = "Singles"
)

// Track is a normalized catalog entry. Tracks are values and are never
// mutated after Normalize returns them.
type Track struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Era      string `json:"era"`
	Category string `json:"category,omitempty"`
	Album    string `json:"album"`
	Mood     string `json:"mood,omitempty"`

	// DurationSeconds is only meaningful when HasDuration is true.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
	HasDuration     bool    `json:"has_duration,omitempty"`

	Path     string `json:"path,omitempty"` // remote file locator, empty if not playable
	Lyrics   string `json:"lyrics,omitempty"`
	CoverURL string `json:"cover_url,omitempty"` // absolute artwork URL from the source, if any
}

// Playable reports whether the track can be streamed.
func (t Track) Playable() bool {
	return t.Path != ""
}

// DedupKey returns the identity used for duplicate detection.
func (t Track) DedupKey() string {
	return strings.ToLower(t.Title) + "\x00" + strings.ToLower(t.Artist)
}

// DurationText returns the duration formatted as m:ss, or "--:--" if unknown.
func (t Track) DurationText() string {
	if !t.HasDuration {
		return "--:--"
	}
	return FormatDuration(t.DurationSeconds)
}

// FormatDuration formats seconds as m:ss, or h:mm:ss past an hour.
func FormatDuration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0:00"
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
