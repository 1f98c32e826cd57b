package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultPlanCacheSize is the capacity used when a non-positive size is given.
const DefaultPlanCacheSize = 512

// Fingerprint returns the cache key of a SQL text.
func Fingerprint(sql string) uint64 {
	return xxhash.Sum64String(sql)
}

type planEntry[V any] struct {
	sql  string
	plan V
}

// PlanCache keeps the most recently used plans derived from SQL text, keyed by
// the fingerprint of the text. Entries whose text differs from the lookup
// (fingerprint collisions) are treated as misses.
type PlanCache[V any] struct {
	cache *lru.Cache[uint64, planEntry[V]]
	mu    sync.RWMutex
}

func NewPlanCache[V any](size int) (*PlanCache[V], error) {
	if size <= 0 {
		size = DefaultPlanCacheSize
	}
	c, err := lru.New[uint64, planEntry[V]](size)
	if err != nil {
		return nil, err
	}
	return &PlanCache[V]{cache: c}, nil
}

func (c *PlanCache[V]) Get(sql string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lookup(sql)
}

func (c *PlanCache[V]) Add(sql string, plan V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(Fingerprint(sql), planEntry[V]{sql: sql, plan: plan})
}

// GetOrBuild returns the cached plan for sql, building and caching it on a
// miss. Build errors are returned and nothing is cached.
func (c *PlanCache[V]) GetOrBuild(sql string, build func(string) (V, error)) (V, error) {
	// Fast path: read lock only
	c.mu.RLock()
	if plan, ok := c.lookup(sql); ok {
		c.mu.RUnlock()
		return plan, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if plan, ok := c.lookup(sql); ok {
		return plan, nil
	}

	plan, err := build(sql)
	if err != nil {
		var zero V
		return zero, err
	}
	c.cache.Add(Fingerprint(sql), planEntry[V]{sql: sql, plan: plan})
	return plan, nil
}

func (c *PlanCache[V]) Len() int {
	return c.cache.Len()
}

func (c *PlanCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

func (c *PlanCache[V]) lookup(sql string) (V, bool) {
	if e, ok := c.cache.Get(Fingerprint(sql)); ok && e.sql == sql {
		return e.plan, true
	}
	var zero V
	return zero, false
}
