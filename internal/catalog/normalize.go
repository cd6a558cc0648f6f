package catalog

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultAssetBaseURL prefixes relative artwork paths.
const DefaultAssetBaseURL = "https://juicewrldapi.com"

// Normalizer maps raw catalog records to Tracks.
type Normalizer struct {
	AssetBaseURL string
}

// Normalize maps records with the default asset base.
func Normalize(records []gjson.Result) []Track {
	return Normalizer{AssetBaseURL: DefaultAssetBaseURL}.Normalize(records)
}

// NormalizeJSON parses a payload that is either an array of records or an
// object with a "results" array. Malformed payloads yield no tracks.
func NormalizeJSON(payload []byte) []Track {
	return Normalizer{AssetBaseURL: DefaultAssetBaseURL}.NormalizeJSON(payload)
}

// NormalizeJSON is the payload-level entry point of n.
func (n Normalizer) NormalizeJSON(payload []byte) []Track {
	return n.Normalize(Records(payload))
}

// Records extracts the record list from a payload.
func Records(payload []byte) []gjson.Result {
	if !gjson.ValidBytes(payload) {
		return nil
	}
	root := gjson.ParseBytes(payload)
	switch {
	case root.IsArray():
		return root.Array()
	case root.Get("results").IsArray():
		return root.Get("results").Array()
	default:
		return nil
	}
}

// Normalize maps every record, dropping later duplicates of the same
// lower-cased (title, artist) pair. It never fails: missing fields fall back
// to defaults.
func (n Normalizer) Normalize(records []gjson.Result) []Track {
	seen := make(map[string]struct{}, len(records))
	tracks := make([]Track, 0, len(records))
	for _, r := range records {
		if !r.IsObject() {
			continue
		}
		t := n.Track(r)
		key := t.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tracks = append(tracks, t)
	}
	return tracks
}

// Track maps a single record.
func (n Normalizer) Track(r gjson.Result) Track {
	t := Track{
		Title:    firstString(r, DefaultTitle, "name", "title"),
		Artist:   artistOf(r),
		Era:      nameOf(r.Get("era"), DefaultEra),
		Category: firstString(r, "", "category", "category_name"),
		Album:    nameOf(r.Get("album"), DefaultAlbum),
		Mood:     firstString(r, "", "mood"),
		Path:     r.Get("path").String(),
		Lyrics:   r.Get("lyrics").String(),
		CoverURL: n.absoluteURL(firstString(r, "", "cover_art_url", "cover_art", "image_url")),
	}
	if secs, ok := ParseDuration(firstString(r, "", "length", "duration")); ok {
		t.DurationSeconds = secs
		t.HasDuration = true
	}

	t.ID = idOf(r)
	if t.ID == "" {
		t.ID = DeriveID(t.Title, t.Artist, t.Path)
	}
	return t
}

func (n Normalizer) absoluteURL(u string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	base := strings.TrimSuffix(n.AssetBaseURL, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return base + u
}

func idOf(r gjson.Result) string {
	id := r.Get("id")
	switch id.Type {
	case gjson.String:
		return strings.TrimSpace(id.Str)
	case gjson.Number:
		if id.Num == 0 {
			return ""
		}
		return id.Raw
	default:
		return ""
	}
}

// artistOf reads credited_artists as a string or a list of names.
func artistOf(r gjson.Result) string {
	credited := r.Get("credited_artists")
	if credited.IsArray() {
		var names []string
		for _, a := range credited.Array() {
			if name := nameOf(a, ""); name != "" {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ")
		}
	}
	return firstString(r, DefaultArtist, "credited_artists", "artist")
}

// nameOf reads either a plain string or an object's "name" field.
func nameOf(v gjson.Result, fallback string) string {
	var s string
	switch {
	case v.IsObject():
		s = v.Get("name").String()
	case v.Type == gjson.String:
		s = v.Str
	}
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

func firstString(r gjson.Result, fallback string, paths ...string) string {
	for _, p := range paths {
		v := r.Get(p)
		if v.Type != gjson.String {
			continue
		}
		if s := strings.TrimSpace(v.Str); s != "" {
			return s
		}
	}
	return fallback
}

// Record re-emits t in the remote record shape, so that normalizing
// already-normalized tracks is lossless.
func (t Track) Record() gjson.Result {
	rec := map[string]any{
		"id":               t.ID,
		"name":             t.Title,
		"credited_artists": t.Artist,
		"era":              map[string]string{"name": t.Era},
		"category":         t.Category,
		"album":            t.Album,
		"mood":             t.Mood,
		"path":             t.Path,
		"lyrics":           t.Lyrics,
		"cover_art_url":    t.CoverURL,
	}
	if t.HasDuration {
		rec["length"] = FormatDuration(t.DurationSeconds)
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(b)
}

// ToRecords re-emits tracks in the remote record shape.
func ToRecords(tracks []Track) []gjson.Result {
	out := make([]gjson.Result, len(tracks))
	for i, t := range tracks {
		out[i] = t.Record()
	}
	return out
}
