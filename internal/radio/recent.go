package radio

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

const recentFalsePositiveRate = 0.01

// Recent remembers the last N served keys. A Bloom filter answers most
// misses without touching the LRU; it is rebuilt once evictions have made
// it stale.
type Recent struct {
	mu        sync.Mutex
	size      int
	bloom     *bloom.BloomFilter
	lru       *lru.Cache[string, struct{}]
	evictions int
}

// NewRecent creates a recent set holding at most size keys.
func NewRecent(size int) *Recent {
	if size <= 0 {
		size = DefaultRecentSize
	}
	r := &Recent{size: size}
	r.lru, _ = lru.NewWithEvict[string, struct{}](size, func(string, struct{}) {
		r.evictions++
	})
	r.bloom = bloom.NewWithEstimates(uint(size), recentFalsePositiveRate)
	return r
}

// Has reports whether key was served recently.
func (r *Recent) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.bloom.TestString(key) {
		return false
	}
	return r.lru.Contains(key)
}

// Add records key as served.
func (r *Recent) Add(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bloom.AddString(key)
	r.lru.Add(key, struct{}{})
	if r.evictions >= r.size {
		r.rebuild()
	}
}

// Len returns the number of remembered keys.
func (r *Recent) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lru.Len()
}

// Clear forgets everything.
func (r *Recent) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lru.Purge()
	r.evictions = 0
	r.bloom = bloom.NewWithEstimates(uint(r.size), recentFalsePositiveRate)
}

func (r *Recent) rebuild() {
	r.bloom = bloom.NewWithEstimates(uint(r.size), recentFalsePositiveRate)
	for _, key := range r.lru.Keys() {
		r.bloom.AddString(key)
	}
	r.evictions = 0
}
