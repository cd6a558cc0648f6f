package state

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/llehouerou/wrld/internal/catalog"
)

// setupTestManager creates a Manager over an in-memory SQLite database.
func setupTestManager(t *testing.T) *Manager {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	// A second pooled connection would see a different in-memory database.
	db.SetMaxOpenConns(1)

	m, err := OpenDB(db, nil)
	if err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestLoad_EmptyReturnsDefaults(t *testing.T) {
	m := setupTestManager(t)

	blob := m.Load(DefaultStorageKey)

	if !blob.Settings.Lyrics || !blob.Settings.Motion {
		t.Errorf("Settings = %+v, want both enabled", blob.Settings)
	}
	if blob.Likes == nil || blob.CoverCache == nil || blob.Playlists == nil {
		t.Error("maps must be initialized")
	}
	if blob.Profile.Device == "" {
		t.Error("expected a generated device fingerprint")
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := setupTestManager(t)

	blob := DefaultBlob()
	blob.Filters.Era = "DRFL"
	blob.Likes["1"] = LikedTrack{
		Track:   catalog.Track{ID: "1", Title: "Lucid Dreams", Artist: "Juice WRLD"},
		LikedAt: time.Unix(1700000000, 0).UTC(),
	}
	blob.CoverCache["lucid dreams|juice wrld"] = "https://img.example/ld.jpg"
	blob.Settings.Motion = false

	if err := m.Save(DefaultStorageKey, blob); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := m.Load(DefaultStorageKey)

	if got.Filters.Era != "DRFL" {
		t.Errorf("Filters.Era = %q, want DRFL", got.Filters.Era)
	}
	if got.Likes["1"].Track.Title != "Lucid Dreams" {
		t.Errorf("Likes[1].Track.Title = %q, want Lucid Dreams", got.Likes["1"].Track.Title)
	}
	if !got.Likes["1"].LikedAt.Equal(blob.Likes["1"].LikedAt) {
		t.Errorf("LikedAt = %v, want %v", got.Likes["1"].LikedAt, blob.Likes["1"].LikedAt)
	}
	if got.CoverCache["lucid dreams|juice wrld"] != "https://img.example/ld.jpg" {
		t.Errorf("CoverCache entry missing: %v", got.CoverCache)
	}
	if got.Settings.Motion {
		t.Error("Settings.Motion = true, want false")
	}
	if got.Profile.Device != blob.Profile.Device {
		t.Errorf("Profile.Device = %q, want %q", got.Profile.Device, blob.Profile.Device)
	}
}

func TestSave_Overwrites(t *testing.T) {
	m := setupTestManager(t)

	first := DefaultBlob()
	first.Filters.Era = "one"
	second := DefaultBlob()
	second.Filters.Era = "two"

	if err := m.Save("k", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := m.Save("k", second); err != nil {
		t.Fatalf("Save (update) failed: %v", err)
	}

	if got := m.Load("k").Filters.Era; got != "two" {
		t.Errorf("Filters.Era = %q, want two", got)
	}
}

func TestLoad_UnparsableFallsBackToDefaults(t *testing.T) {
	m := setupTestManager(t)

	if _, err := m.db.Exec(`INSERT INTO state_blobs (storage_key, value) VALUES (?, ?)`, "k", "{not json"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	blob := m.Load("k")
	if !blob.Settings.Lyrics || len(blob.Likes) != 0 {
		t.Errorf("expected defaults, got %+v", blob)
	}
}

func TestLoad_NullValueFallsBackToDefaults(t *testing.T) {
	m := setupTestManager(t)

	if _, err := m.db.Exec(`INSERT INTO state_blobs (storage_key) VALUES (?)`, "k"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if blob := m.Load("k"); !blob.Settings.Lyrics {
		t.Errorf("expected defaults, got %+v", blob)
	}
}

func TestSaveDeferred_VisibleBeforeFlushAndFlushedOnClose(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	m, err := OpenDB(db, nil)
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}

	blob := DefaultBlob()
	blob.CoverCache["k"] = "v"
	m.SaveDeferred("key", blob)

	if got := m.Load("key").CoverCache["k"]; got != "v" {
		t.Errorf("pending blob not visible to Load: %q", got)
	}

	m.flush()
	data, err := loadBlob(m.db, "key")
	if err != nil {
		t.Fatalf("loadBlob failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected flushed data")
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestSave_CancelsPendingDeferred(t *testing.T) {
	m := setupTestManager(t)

	deferred := DefaultBlob()
	deferred.Filters.Era = "old"
	m.SaveDeferred("k", deferred)

	now := DefaultBlob()
	now.Filters.Era = "new"
	if err := m.Save("k", now); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m.flush()
	if got := m.Load("k").Filters.Era; got != "new" {
		t.Errorf("Filters.Era = %q, want new", got)
	}
}

func TestFlush_DoesNotOverwriteNewerSave(t *testing.T) {
	m := setupTestManager(t)

	deferred := DefaultBlob()
	deferred.Filters.Era = "old"
	m.SaveDeferred("k", deferred)
	taken := m.takePending()

	now := DefaultBlob()
	now.Filters.Era = "new"
	if err := m.Save("k", now); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	m.writePending(taken)

	if got := m.Load("k").Filters.Era; got != "new" {
		t.Errorf("Filters.Era = %q, want new", got)
	}
}
