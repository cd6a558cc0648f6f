package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/wrld/internal/catalogapi"
	"github.com/llehouerou/wrld/internal/engine"
	"github.com/llehouerou/wrld/internal/errmsg"
	"github.com/llehouerou/wrld/internal/state"
)

const songs = `{"results": [
	{"id": 1, "name": "Lucid Dreams", "credited_artists": "Juice WRLD", "era": "DRFL", "length": "4:00",
	 "path": "lucid.mp3", "lyrics": "a\nb\nc"},
	{"id": 2, "name": "Robbery", "credited_artists": "Juice WRLD", "era": "DRFL", "length": "4:00",
	 "path": "robbery.mp3"},
	{"id": 3, "name": "All Girls Are The Same", "credited_artists": "Juice WRLD", "era": "GBGR",
	 "path": "agats.mp3"}
]}`

func newServer(t *testing.T, fail bool) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		switch r.URL.Path {
		case "/songs/":
			_, _ = w.Write([]byte(songs))
		case "/eras/":
			_, _ = w.Write([]byte(`{"results": [{"name": "DRFL"}, {"name": "GBGR"}]}`))
		case "/categories/":
			_, _ = w.Write([]byte(`{"categories": []}`))
		case "/radio/random/":
			_, _ = w.Write([]byte(`{"song": {"id": 9, "name": "Wishing Well", "credited_artists": "Juice WRLD", "path": "ww.mp3"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// run executes one command against a fresh engine, as a separate process
// invocation would.
func run(t *testing.T, baseURL string, store state.Store, args ...string) (string, string, error) {
	t.Helper()
	e := engine.New(catalogapi.New(baseURL), store, engine.WithRadio(1, 10))
	t.Cleanup(e.Wait)

	var out, errOut bytes.Buffer
	cmd := NewApp(e, &out, &errOut, 0).Command()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSongs_ListsView(t *testing.T) {
	out, _, err := run(t, newServer(t, false), state.NewMemory(), "songs")

	require.NoError(t, err)
	assert.Contains(t, out, "songs: 3 tracks")
	assert.Contains(t, out, ">01")
	assert.Contains(t, out, "Lucid Dreams")
	assert.Contains(t, out, "All Girls Are The Same")
	assert.Contains(t, out, "4:00")
}

func TestSongs_FiltersPersistAcrossRuns(t *testing.T) {
	base := newServer(t, false)
	store := state.NewMemory()

	out, _, err := run(t, base, store, "songs", "--era", "GBGR")
	require.NoError(t, err)
	assert.Contains(t, out, "songs: 1 tracks [era=GBGR]")
	assert.NotContains(t, out, "Robbery")

	out, _, err = run(t, base, store, "songs")
	require.NoError(t, err)
	assert.Contains(t, out, "[era=GBGR]")

	out, _, err = run(t, base, store, "songs", "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "songs: 3 tracks\n")
}

func TestSongs_NoMatches(t *testing.T) {
	out, _, err := run(t, newServer(t, false), state.NewMemory(), "songs", "--era", "Nope")

	require.NoError(t, err)
	assert.Contains(t, out, errmsg.StatusNoMatches)
}

func TestSongs_UnknownSection(t *testing.T) {
	_, _, err := run(t, newServer(t, false), state.NewMemory(), "songs", "--section", "videos")

	require.Error(t, err)
}

func TestSongs_APIDown(t *testing.T) {
	out, errOut, err := run(t, newServer(t, true), state.NewMemory(), "songs")

	require.NoError(t, err)
	assert.Contains(t, out, errmsg.StatusEmptyAPI)
	assert.Contains(t, errOut, "Failed to load songs")
}

func TestOpen_PrintsTrack(t *testing.T) {
	base := newServer(t, false)

	out, _, err := run(t, base, state.NewMemory(), "open", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Lucid Dreams\n")
	assert.Contains(t, out, base+"/files/download/?path=lucid.mp3")
	assert.Contains(t, out, "(generated placeholder)")
	assert.Contains(t, out, "Lyrics")
	assert.Contains(t, out, "1:20  b")
}

func TestOpen_OutOfRange(t *testing.T) {
	_, _, err := run(t, newServer(t, false), state.NewMemory(), "open", "9")
	require.Error(t, err)

	_, _, err = run(t, newServer(t, false), state.NewMemory(), "open", "zero")
	require.Error(t, err)
}

func TestLikeAndLikes(t *testing.T) {
	base := newServer(t, false)
	store := state.NewMemory()

	out, _, err := run(t, base, store, "like", "2")
	require.NoError(t, err)
	assert.Equal(t, "Liked Robbery\n", out)

	out, _, err = run(t, base, store, "likes")
	require.NoError(t, err)
	assert.Contains(t, out, "Robbery")
	assert.Contains(t, out, "Juice WRLD")

	out, _, err = run(t, base, store, "like", "2")
	require.NoError(t, err)
	assert.Equal(t, "Unliked Robbery\n", out)

	out, _, err = run(t, base, store, "likes")
	require.NoError(t, err)
	assert.Equal(t, errmsg.StatusEmptyLikes+"\n", out)
}

func TestRadio(t *testing.T) {
	out, _, err := run(t, newServer(t, false), state.NewMemory(), "radio")

	require.NoError(t, err)
	assert.Contains(t, out, "radio: 1 tracks")
	assert.Contains(t, out, "Wishing Well")
}

func TestSwipe(t *testing.T) {
	out, _, err := run(t, newServer(t, false), state.NewMemory(), "swipe", "--deal")

	require.NoError(t, err)
	assert.Contains(t, out, "swipe: 3 tracks")
}

func TestEras(t *testing.T) {
	out, _, err := run(t, newServer(t, false), state.NewMemory(), "eras")

	require.NoError(t, err)
	assert.Contains(t, out, "Eras (2)\n  DRFL\n  GBGR\n")
	assert.Contains(t, out, "Categories (0)")
	assert.Contains(t, out, "Albums (1)\n  Singles\n")
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	base := newServer(t, false)

	out, _, err := run(t, base, state.NewMemory(), "search", "all", "girls")
	require.NoError(t, err)
	assert.Contains(t, out, "All Girls Are The Same")
	assert.NotContains(t, out, "Robbery")

	out, _, err = run(t, base, state.NewMemory(), "search", "conversations")
	require.NoError(t, err)
	assert.Equal(t, "No songs match your search.\n", out)
}
