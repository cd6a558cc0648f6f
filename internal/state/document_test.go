package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_UpdatesShareOneBlob(t *testing.T) {
	mem := NewMemory()
	doc := OpenDocument(mem, "")

	assert.Equal(t, DefaultStorageKey, doc.Key())

	require.NoError(t, doc.Update(func(b *Blob) { b.Filters.Era = "DRFL" }))
	doc.UpdateDeferred(func(b *Blob) { b.CoverCache["k"] = "v" })

	stored := mem.Load(DefaultStorageKey)
	assert.Equal(t, "DRFL", stored.Filters.Era, "deferred write keeps the earlier field")
	assert.Equal(t, "v", stored.CoverCache["k"])
	assert.Equal(t, 2, mem.Saves())
}

func TestDocument_GetReturnsCopy(t *testing.T) {
	doc := OpenDocument(NewMemory(), "k")

	b := doc.Get()
	b.CoverCache["x"] = "y"

	doc.View(func(b *Blob) {
		assert.NotContains(t, b.CoverCache, "x")
	})
}

func TestOpenDocument_LoadsExisting(t *testing.T) {
	mem := NewMemory()
	b := DefaultBlob()
	b.Section = "likes"
	require.NoError(t, mem.Save("k", b))

	doc := OpenDocument(mem, "k")

	assert.Equal(t, "likes", doc.Get().Section)
}

// gatedStore holds the first Save until released.
type gatedStore struct {
	Store
	entered chan struct{}
	release chan struct{}
	once    bool
}

func (g *gatedStore) Save(key string, blob Blob) error {
	if !g.once {
		g.once = true
		close(g.entered)
		<-g.release
	}
	return g.Store.Save(key, blob)
}

func TestDocument_DeferredUpdateDuringSaveIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrld.db")
	m, err := Open(path, nil)
	require.NoError(t, err)
	gate := &gatedStore{Store: m, entered: make(chan struct{}), release: make(chan struct{})}
	doc := OpenDocument(gate, "")

	saved := make(chan error, 1)
	go func() { saved <- doc.Update(func(b *Blob) { b.Filters.Era = "DRFL" }) }()
	<-gate.entered

	deferred := make(chan struct{})
	go func() {
		doc.UpdateDeferred(func(b *Blob) { b.CoverCache["lucid dreams|juice wrld"] = "http://x/cover.jpg" })
		close(deferred)
	}()
	select {
	case <-deferred:
		t.Fatal("deferred update must wait for the running save")
	case <-time.After(20 * time.Millisecond):
	}

	close(gate.release)
	require.NoError(t, <-saved)
	<-deferred
	require.NoError(t, m.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	stored := reopened.Load(DefaultStorageKey)
	assert.Equal(t, "DRFL", stored.Filters.Era)
	assert.Equal(t, "http://x/cover.jpg", stored.CoverCache["lucid dreams|juice wrld"])
}
