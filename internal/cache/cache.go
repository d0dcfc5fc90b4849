// Package cache provides the bounded verdict cache shared across requests.
// Eviction is oldest-insertion-first; only the capacity bound is a
// contract, the eviction order is an implementation convenience.
package cache

import (
	"sync"

	"github.com/LegendarySumit/TruthShield/internal/model"
)

// DefaultCapacity bounds the cache when no capacity is configured.
const DefaultCapacity = 128

// VerdictCache is a mutex-guarded bounded map from raw input text to the
// verdict it produced. It is an optimization only: entries are never
// re-validated or expired by time.
type VerdictCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]model.Verdict
	order    []string
}

// New creates a cache holding at most capacity entries.
func New(capacity int) *VerdictCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &VerdictCache{
		capacity: capacity,
		items:    make(map[string]model.Verdict, capacity),
	}
}

// Get returns the cached verdict for key, if present.
func (c *VerdictCache) Get(key string) (model.Verdict, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

// Put stores a verdict, evicting the oldest inserted entry when the cache is
// full. Re-putting an existing key replaces its value without growing the
// cache or changing its insertion position.
func (c *VerdictCache) Put(key string, v model.Verdict) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		c.items[key] = v
		return
	}

	if len(c.items) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.items, oldest)
	}

	c.items[key] = v
	c.order = append(c.order, key)
}

// Len returns the current number of cached entries.
func (c *VerdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
