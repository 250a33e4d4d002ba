package resolver

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultResourceCapacity bounds the in-memory resource registry. An LRU
// cap keeps the retrieval window useful for a session without unbounded
// growth.
const DefaultResourceCapacity = 256

// Entry is one retrievable inline resource.
type Entry struct {
	Data []byte
	Mime string
	// Text marks UTF-8 payloads so readers render text instead of base64.
	Text bool
}

// ResourceRegistry maps elevenlabs:// URIs to payloads for later retrieval.
// Safe for concurrent use; least recently used entries are evicted once the
// capacity is reached.
type ResourceRegistry struct {
	cache *lru.Cache[string, Entry]
}

// NewResourceRegistry creates a registry holding at most capacity entries.
// A non-positive capacity selects DefaultResourceCapacity.
func NewResourceRegistry(capacity int) *ResourceRegistry {
	if capacity <= 0 {
		capacity = DefaultResourceCapacity
	}
	cache, err := lru.New[string, Entry](capacity)
	if err != nil {
		// lru.New fails only for non-positive sizes, excluded above.
		panic(err)
	}
	return &ResourceRegistry{cache: cache}
}

// Add registers an entry under uri.
func (r *ResourceRegistry) Add(uri string, e Entry) {
	r.cache.Add(uri, e)
}

// Get retrieves the entry for uri.
func (r *ResourceRegistry) Get(uri string) (Entry, bool) {
	return r.cache.Get(uri)
}

// URIs lists the currently registered URIs, oldest first.
func (r *ResourceRegistry) URIs() []string {
	return r.cache.Keys()
}

// Len returns the number of registered entries.
func (r *ResourceRegistry) Len() int {
	return r.cache.Len()
}
