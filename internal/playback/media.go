package playback

import "sync"

// Media is the single media element owned by the Service. Load replaces the
// source; completion (with the discovered duration) is reported back
// through Service.MediaLoaded.
type Media interface {
	Load(url string) error
	Play() error
	Pause() error
}

// NopMedia accepts every call. Used when the host has no output.
type NopMedia struct{}

func (NopMedia) Load(string) error { return nil }
func (NopMedia) Play() error       { return nil }
func (NopMedia) Pause() error      { return nil }

// Mock is a test double for Media.
type Mock struct {
	mu        sync.Mutex
	loadErr   error
	playErr   error
	loadCalls []string
	playCalls int
	paused    int
}

// NewMock creates a new mock media element.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Load(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadCalls = append(m.loadCalls, url)
	return m.loadErr
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return m.playErr
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused++
	return nil
}

// Test helpers

func (m *Mock) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) LoadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

// Verify implementations at compile time.
var (
	_ Media = NopMedia{}
	_ Media = (*Mock)(nil)
)
