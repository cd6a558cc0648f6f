package artwork

import (
	"context"

	"github.com/llehouerou/wrld/internal/musicbrainz"
)

// maxReleaseChecks bounds the Cover Art Archive probes per search.
const maxReleaseChecks = 3

// RecordingFinder is the MusicBrainz client surface the searcher needs.
type RecordingFinder interface {
	SearchRecordings(ctx context.Context, title, artist string) ([]musicbrainz.Recording, error)
	HasCoverArt(ctx context.Context, releaseID string) (bool, error)
	CoverArtURL(releaseID string) string
}

var _ RecordingFinder = (*musicbrainz.Client)(nil)

// MusicBrainz finds the front cover of a release carrying the recording.
type MusicBrainz struct {
	client RecordingFinder
}

// NewMusicBrainz creates a MusicBrainz searcher.
func NewMusicBrainz(client RecordingFinder) *MusicBrainz {
	return &MusicBrainz{client: client}
}

// Search probes the releases of the best recording matches in order and
// returns the first front cover found.
func (s *MusicBrainz) Search(ctx context.Context, title, artist string) (string, error) {
	recordings, err := s.client.SearchRecordings(ctx, title, artist)
	if err != nil {
		return "", err
	}
	checked := 0
	for _, rec := range recordings {
		for _, id := range rec.ReleaseIDs {
			if checked == maxReleaseChecks {
				return "", ErrNotFound
			}
			checked++
			ok, err := s.client.HasCoverArt(ctx, id)
			if err != nil {
				return "", err
			}
			if ok {
				return s.client.CoverArtURL(id), nil
			}
		}
	}
	return "", ErrNotFound
}
