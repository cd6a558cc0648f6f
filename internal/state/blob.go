package state

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/wrld/internal/catalog"
)

// DefaultStorageKey is the key the blob is stored under.
const DefaultStorageKey = "wrld.rebuild.v2"

// Blob is the whole persisted state.
type Blob struct {
	Profile    Profile               `json:"profile"`
	Likes      map[string]LikedTrack `json:"likes"`
	Playlists  map[string][]string   `json:"playlists"`
	CoverCache map[string]string     `json:"cover_cache"`
	Settings   Settings              `json:"settings"`
	Filters    Filters               `json:"filters"`
	SwipeQueue []string              `json:"swipe_queue"`
	Section    string                `json:"section,omitempty"`
}

// Profile identifies the local listener.
type Profile struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Device    string    `json:"device"`
}

// Settings are the user toggles.
type Settings struct {
	Lyrics bool `json:"lyrics"`
	Motion bool `json:"motion"`
}

// Filters are the persisted view filters. Empty means match-all.
type Filters struct {
	Era      string `json:"era"`
	Category string `json:"category"`
	Album    string `json:"album,omitempty"`
	Mood     string `json:"mood,omitempty"`
}

// LikedTrack is a like entry. Older blobs stored a bare `true` per id;
// those decode with Legacy set and only the id known.
type LikedTrack struct {
	Track   catalog.Track `json:"track"`
	LikedAt time.Time     `json:"liked_at"`
	Legacy  bool          `json:"-"`
}

// UnmarshalJSON accepts both the snapshot object and the legacy boolean.
func (l *LikedTrack) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*l = LikedTrack{Legacy: flag}
		return nil
	}
	type plain LikedTrack
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = LikedTrack(p)
	return nil
}

// DefaultBlob returns the state used when nothing was persisted.
func DefaultBlob() Blob {
	return Blob{
		Profile: Profile{
			Name:      "Listener",
			CreatedAt: time.Now().UTC().Truncate(time.Second),
			Device:    uuid.NewString(),
		},
		Likes:      map[string]LikedTrack{},
		Playlists:  map[string][]string{},
		CoverCache: map[string]string{},
		Settings:   Settings{Lyrics: true, Motion: true},
		SwipeQueue: []string{},
	}
}

// Decode merges data into the defaults: keys missing from data keep their
// default value. Unparsable data yields the defaults and the parse error.
func Decode(data []byte) (Blob, error) {
	blob := DefaultBlob()
	if len(data) == 0 {
		return blob, nil
	}
	if err := json.Unmarshal(data, &blob); err != nil {
		return DefaultBlob(), err
	}
	blob.normalize()
	return blob, nil
}

// normalize repairs what a partial or older blob may leave behind.
func (b *Blob) normalize() {
	if b.Likes == nil {
		b.Likes = map[string]LikedTrack{}
	}
	if b.Playlists == nil {
		b.Playlists = map[string][]string{}
	}
	if b.CoverCache == nil {
		b.CoverCache = map[string]string{}
	}
	if b.SwipeQueue == nil {
		b.SwipeQueue = []string{}
	}
	for id, like := range b.Likes {
		switch {
		case like.Track.ID != "":
		case like.Legacy:
			like.Track.ID = id
			b.Likes[id] = like
		default:
			delete(b.Likes, id)
		}
	}
	if b.Profile.Device == "" {
		b.Profile.Device = uuid.NewString()
	}
}

// Encode serializes the blob.
func Encode(b Blob) ([]byte, error) {
	return json.Marshal(b)
}

// Clone returns a deep copy, so callers can hand a snapshot to a deferred
// save while they keep mutating their own copy.
func (b Blob) Clone() Blob {
	c := b
	c.Likes = make(map[string]LikedTrack, len(b.Likes))
	for k, v := range b.Likes {
		c.Likes[k] = v
	}
	c.Playlists = make(map[string][]string, len(b.Playlists))
	for k, v := range b.Playlists {
		c.Playlists[k] = append([]string(nil), v...)
	}
	c.CoverCache = make(map[string]string, len(b.CoverCache))
	for k, v := range b.CoverCache {
		c.CoverCache[k] = v
	}
	c.SwipeQueue = append([]string{}, b.SwipeQueue...)
	return c
}
