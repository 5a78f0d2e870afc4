package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/greysolve/outreach-console/internal/pricing"
)

// entry is a single cache entry with TTL
type entry struct {
	estimate   pricing.CostEstimate
	insertedAt time.Time
	element    *list.Element
}

func (e *entry) isExpired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(e.insertedAt) > ttl
}

// MemoryCache is an in-process LRU cache with TTL.
// Thread-safe implementation using sync.Mutex
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	lruList *list.List
	maxSize int
	ttl     time.Duration
	hits    uint64
	misses  uint64
}

// NewMemoryCache creates a MemoryCache with the given capacity and TTL (0 disables expiry)
func NewMemoryCache(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &MemoryCache{
		entries: make(map[string]*entry),
		lruList: list.New(),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get returns the cached estimate or ErrMiss
func (c *MemoryCache) Get(_ context.Context, key string) (pricing.CostEstimate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.isExpired(c.ttl) {
		c.misses++
		if ok {
			c.remove(key)
		}
		return pricing.CostEstimate{}, ErrMiss
	}

	c.lruList.MoveToFront(e.element)
	c.hits++
	return e.estimate, nil
}

// Set stores an estimate, evicting the least recently used entry when full
func (c *MemoryCache) Set(_ context.Context, key string, estimate pricing.CostEstimate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.estimate = estimate
		e.insertedAt = time.Now()
		c.lruList.MoveToFront(e.element)
		return nil
	}

	if c.lruList.Len() >= c.maxSize {
		if back := c.lruList.Back(); back != nil {
			c.remove(back.Value.(string))
		}
	}

	c.entries[key] = &entry{
		estimate:   estimate,
		insertedAt: time.Now(),
		element:    c.lruList.PushFront(key),
	}
	return nil
}

// Stats represents cache statistics
type Stats struct {
	Size    int
	MaxSize int
	Hits    uint64
	Misses  uint64
}

// Stats returns cache statistics
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Size:    c.lruList.Len(),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// remove must be called with the lock held
func (c *MemoryCache) remove(key string) {
	if e, ok := c.entries[key]; ok {
		c.lruList.Remove(e.element)
		delete(c.entries, key)
	}
}
