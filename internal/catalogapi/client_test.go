package catalogapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL)
}

func TestClient_SongsQuery(t *testing.T) {
	var got url.Values
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/songs/", r.URL.Path)
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"results": [{"name": "A"}, {"name": "B"}]}`))
	})

	recs, err := c.Songs(context.Background(), SongQuery{Era: "DRFL"})

	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "1", got.Get("page"))
	assert.Equal(t, "80", got.Get("page_size"))
	assert.Equal(t, "DRFL", got.Get("era"))
	_, hasCategory := got["category"]
	assert.False(t, hasCategory, "empty params must not be sent")
}

func TestClient_NonSuccessIsRequestError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Songs(context.Background(), SongQuery{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequest))
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusServiceUnavailable, reqErr.Status)
}

func TestClient_Eras(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []Era
	}{
		{"array", `[{"name": "JW 999"}, {"name": ""}, {"id": 3}]`, []Era{{Name: "JW 999"}}},
		{"results", `{"results": [{"name": "DRFL"}, {"name": "LND"}]}`, []Era{{Name: "DRFL"}, {Name: "LND"}}},
		{"garbage", `{"oops": true}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			eras, err := c.Eras(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, eras)
		})
	}
}

func TestClient_Categories(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/categories/", r.URL.Path)
		_, _ = w.Write([]byte(`{"categories": [
			{"label": "Released", "value": "released"},
			{"label": "No value"},
			{"label": "Unreleased", "value": "unreleased"}
		]}`))
	})

	cats, err := c.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Category{
		{Label: "Released", Value: "released"},
		{Label: "Unreleased", Value: "unreleased"},
	}, cats)
}

func TestClient_RandomSong(t *testing.T) {
	for name, body := range map[string]string{
		"bare":     `{"name": "Wishing Well"}`,
		"envelope": `{"song": {"name": "Wishing Well"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			rec, err := c.RandomSong(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Wishing Well", rec.Get("name").String())
		})
	}
}

func TestClient_StreamURL(t *testing.T) {
	c := New("https://api.example/juicewrld/")

	assert.Equal(t,
		"https://api.example/juicewrld/files/download/?path=Compilation%2FGoodbye+%26+Good+Riddance%2Fsong.mp3",
		c.StreamURL("Compilation/Goodbye & Good Riddance/song.mp3"))
	assert.Empty(t, c.StreamURL(""))
}

func TestNew_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
}
