package state

import "sync"

// Document is the in-memory copy of one blob shared by the components that
// persist into it. Every mutation goes through Update or UpdateDeferred so
// writers never overwrite each other's fields.
type Document struct {
	store Store
	key   string

	mu   sync.Mutex
	blob Blob
}

// OpenDocument loads key from store.
func OpenDocument(store Store, key string) *Document {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Document{store: store, key: key, blob: store.Load(key)}
}

// Key returns the storage key.
func (d *Document) Key() string {
	return d.key
}

// Get returns a copy of the current blob.
func (d *Document) Get() Blob {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.blob.Clone()
}

// View calls fn with the current blob under the lock. fn must not retain it.
func (d *Document) View(fn func(b *Blob)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.blob)
}

// Update applies fn and saves immediately. The lock is held through the
// save so copies reach the store in the order they were taken.
func (d *Document) Update(fn func(b *Blob)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.blob)
	return d.store.Save(d.key, d.blob.Clone())
}

// UpdateDeferred applies fn and schedules a debounced save.
func (d *Document) UpdateDeferred(fn func(b *Blob)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.blob)
	d.store.SaveDeferred(d.key, d.blob.Clone())
}
