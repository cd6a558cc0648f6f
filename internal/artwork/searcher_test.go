package artwork

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wrld/internal/lastfm"
)

func TestITunes_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lucid Dreams Juice WRLD", r.URL.Query().Get("term"))
		assert.Equal(t, "song", r.URL.Query().Get("entity"))
		_, _ = w.Write([]byte(`{"resultCount":1,"results":[{"artworkUrl100":"https://is1.mzstatic.com/x/100x100bb.jpg"}]}`))
	}))
	defer srv.Close()

	got, err := NewITunes(srv.URL, srv.Client()).Search(context.Background(), "Lucid Dreams", "Juice WRLD")

	require.NoError(t, err)
	assert.Equal(t, "https://is1.mzstatic.com/x/600x600bb.jpg", got)
}

func TestITunes_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultCount":0,"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewITunes(srv.URL, nil).Search(context.Background(), "x", "y")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestITunes_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewITunes(srv.URL, nil).Search(context.Background(), "x", "y")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

type fakeImager struct {
	images []lastfm.Image
	err    error
}

func (f fakeImager) TrackImages(string, string) ([]lastfm.Image, error) {
	return f.images, f.err
}

func TestLastFM_Search(t *testing.T) {
	s := NewLastFM(fakeImager{images: []lastfm.Image{
		{Size: "small", URL: "s.png"},
		{Size: "extralarge", URL: "xl.png"},
	}})

	got, err := s.Search(context.Background(), "Lucid Dreams", "Juice WRLD")

	require.NoError(t, err)
	assert.Equal(t, "xl.png", got)
}

func TestLastFM_NoImages(t *testing.T) {
	_, err := NewLastFM(fakeImager{}).Search(context.Background(), "x", "y")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChain(t *testing.T) {
	miss := SearcherFunc(func(context.Context, string, string) (string, error) { return "", ErrNotFound })
	fail := SearcherFunc(func(context.Context, string, string) (string, error) { return "", errors.New("down") })
	hit := SearcherFunc(func(context.Context, string, string) (string, error) { return "https://hit", nil })

	got, err := Chain{miss, fail, hit}.Search(context.Background(), "x", "y")
	require.NoError(t, err)
	assert.Equal(t, "https://hit", got)

	_, err = Chain{miss, miss}.Search(context.Background(), "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Chain{miss, fail}.Search(context.Background(), "x", "y")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = Chain(nil).Search(context.Background(), "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)
}
