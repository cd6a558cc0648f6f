// Package state persists the listener's likes, settings, filters and cover
// cache as a single JSON blob in SQLite.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	dbutil "github.com/llehouerou/wrld/internal/db"
)

const (
	appName      = "wrld"
	dbFileName   = "wrld.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager is the SQLite-backed Store.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	seq       uint64
	pending   map[string]pendingBlob

	// writeMu orders database writes; written holds the sequence of the
	// newest blob stored per key so an older copy never overwrites it.
	writeMu sync.Mutex
	written map[string]uint64
}

type pendingBlob struct {
	blob Blob
	seq  uint64
}

// Open opens (creating if needed) the state database at path.
// An empty path uses the XDG data directory.
func Open(path string, logger *zap.Logger) (*Manager, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	m, err := OpenDB(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

// OpenDB wraps an already opened database.
func OpenDB(db *sql.DB, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := initSchema(context.Background(), db); err != nil {
		return nil, err
	}
	return &Manager{
		db:      db,
		logger:  logger.Named("state"),
		pending: make(map[string]pendingBlob),
		written: make(map[string]uint64),
	}, nil
}

// DefaultPath returns the XDG location of the state database.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Load returns the persisted blob merged into the defaults.
func (m *Manager) Load(key string) Blob {
	m.saveMu.Lock()
	if pending, ok := m.pending[key]; ok {
		m.saveMu.Unlock()
		return pending.blob.Clone()
	}
	m.saveMu.Unlock()

	data, err := loadBlob(m.db, key)
	if err != nil {
		m.logger.Warn("load state failed, using defaults", zap.String("key", key), zap.Error(err))
		return DefaultBlob()
	}

	blob, err := Decode(data)
	if err != nil {
		m.logger.Warn("state blob unparsable, using defaults", zap.String("key", key), zap.Error(err))
	}
	return blob
}

// Save persists blob immediately and drops any pending deferred save for key.
func (m *Manager) Save(key string, blob Blob) error {
	m.saveMu.Lock()
	m.seq++
	seq := m.seq
	delete(m.pending, key)
	m.saveMu.Unlock()

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	if seq < m.written[key] {
		return nil
	}
	if err := saveBlob(m.db, key, blob); err != nil {
		return err
	}
	m.written[key] = seq
	return nil
}

// SaveDeferred debounces writes of high-churn data.
func (m *Manager) SaveDeferred(key string, blob Blob) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.seq++
	m.pending[key] = pendingBlob{blob: blob.Clone(), seq: m.seq}

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, m.flush)
}

func (m *Manager) flush() {
	m.writePending(m.takePending())
}

func (m *Manager) takePending() map[string]pendingBlob {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	pending := m.pending
	m.pending = make(map[string]pendingBlob)
	return pending
}

func (m *Manager) writePending(pending map[string]pendingBlob) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	for key, p := range pending {
		if p.seq < m.written[key] {
			delete(pending, key)
		}
	}
	if len(pending) == 0 {
		return
	}
	err := dbutil.WithTx(context.Background(), m.db, func(tx *sql.Tx) error {
		for key, p := range pending {
			if err := saveBlob(tx, key, p.blob); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		m.logger.Warn("deferred state save failed", zap.Int("blobs", len(pending)), zap.Error(err))
		return
	}
	for key, p := range pending {
		m.written[key] = p.seq
	}
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	m.flush()
	return m.db.Close()
}

func loadBlob(db *sql.DB, key string) ([]byte, error) {
	var value sql.NullString
	err := db.QueryRow(`SELECT value FROM state_blobs WHERE storage_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(dbutil.NullStringValue(value)), nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveBlob(db execer, key string, blob Blob) error {
	data, err := Encode(blob)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO state_blobs (storage_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(storage_key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(data), time.Now().Unix())
	return err
}
