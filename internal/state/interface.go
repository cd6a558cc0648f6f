package state

// Store is the persistence contract for the state blob.
type Store interface {
	// Load returns the blob under key merged into the defaults. It never
	// fails: missing or unparsable data yields the defaults.
	Load(key string) Blob
	// Save persists the blob immediately.
	Save(key string, blob Blob) error
	// SaveDeferred persists the blob after a short quiet period; later
	// calls for the same key replace the pending blob.
	SaveDeferred(key string, blob Blob)
	Close() error
}

// Verify implementations at compile time.
var (
	_ Store = (*Manager)(nil)
	_ Store = (*Memory)(nil)
)
