// Package cache implements an in-memory read cache with typed collection keys,
// TTL expiry and LRU eviction.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// DefaultSize is the maximum number of entries of a cache created with size 0.
const DefaultSize = 1024

type entryKey struct {
	key   Key
	scope string
}

type entry struct {
	id        entryKey
	value     any
	expiresAt time.Time
}

// Cache stores read results per collection key and scope. The scope
// separates entries of the same collection, e.g. per principal and filter.
type Cache struct {
	mu          sync.Mutex
	maxSize     int
	ttl         time.Duration
	now         func() time.Time
	items       map[entryKey]*list.Element
	lru         *list.List
	generations map[Key]uint64
}

// New creates a cache. A ttl of 0 disables caching.
func New(maxSize int, ttl time.Duration) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}

	return &Cache{
		maxSize:     maxSize,
		ttl:         ttl,
		now:         time.Now,
		items:       make(map[entryKey]*list.Element),
		lru:         list.New(),
		generations: make(map[Key]uint64),
	}
}

// WithClock replaces the clock used for expiry. It is meant for tests.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Get returns the value stored for the key and scope.
func (c *Cache) Get(key Key, scope string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[entryKey{key, scope}]
	if !exists {
		return nil, false
	}

	item := elem.Value.(*entry)
	if c.now().After(item.expiresAt) {
		c.removeElement(elem)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return item.value, true
}

// Generation returns the number of invalidations of the key so far.
func (c *Cache) Generation(key Key) uint64 {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// Set stores the value if the key has not been invalidated since generation
// was read. This keeps results fetched before a mutation out of the cache.
func (c *Cache) Set(key Key, scope string, generation uint64, value any) bool {
	if c == nil || c.ttl <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key] != generation {
		return false
	}

	id := entryKey{key, scope}
	item := &entry{id: id, value: value, expiresAt: c.now().Add(c.ttl)}

	if elem, exists := c.items[id]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return true
	}

	c.items[id] = c.lru.PushFront(item)

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	return true
}

// Invalidate removes all entries of the keys, in all scopes.
func (c *Cache) Invalidate(keys ...Key) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stale := make(map[Key]bool, len(keys))
	for _, k := range keys {
		stale[k] = true
		c.generations[k]++
	}

	for id, elem := range c.items {
		if stale[id.key] {
			c.removeElement(elem)
		}
	}
}

func (c *Cache) removeElement(elem *list.Element) {
	item := elem.Value.(*entry)
	delete(c.items, item.id)
	c.lru.Remove(elem)
}

// CleanExpired removes all expired entries and returns the number of removed entries.
func (c *Cache) CleanExpired() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		if now.After(elem.Value.(*entry).expiresAt) {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		c.removeElement(elem)
	}

	return len(toRemove)
}

// Size returns the current number of entries.
func (c *Cache) Size() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// RunCleanup removes expired entries periodically until the context is done.
// On a nil cache it returns immediately.
func (c *Cache) RunCleanup(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.CleanExpired()
		case <-ctx.Done():
			return
		}
	}
}

// Load returns the cached value for the key and scope, or calls fetch and
// caches its result. Errors are never cached.
func Load[T any](c *Cache, key Key, scope string, fetch func() (T, error)) (T, error) {
	if v, ok := c.Get(key, scope); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	generation := c.Generation(key)
	value, err := fetch()
	if err != nil {
		return value, err
	}

	c.Set(key, scope, generation, value)
	return value, nil
}
