package state

import "sync"

// Memory is an in-process Store. Deferred saves apply immediately.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	saves  int
	closed bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) Blob {
	m.mu.Lock()
	data := m.data[key]
	m.mu.Unlock()

	blob, _ := Decode(data)
	return blob
}

func (m *Memory) Save(key string, blob Blob) error {
	data, err := Encode(blob)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.saves++
	return nil
}

func (m *Memory) SaveDeferred(key string, blob Blob) {
	_ = m.Save(key, blob)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetRaw stores raw bytes under key, bypassing encoding.
func (m *Memory) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// Raw returns the stored bytes under key.
func (m *Memory) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Saves returns the number of completed saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// IsClosed reports whether Close was called.
func (m *Memory) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
