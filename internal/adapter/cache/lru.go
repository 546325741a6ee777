// Package cache memoizes prediction scores keyed by artifact version and
// collected input.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// MemoryCache is a thread-safe in-process LRU of scores with an optional TTL.
type MemoryCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
	head    *entry // most recently used
	tail    *entry // least recently used
}

type entry struct {
	key       string
	score     float64
	expiresAt time.Time
	prev      *entry
	next      *entry
}

// NewMemoryCache creates an LRU holding at most maxEntries scores. A zero
// ttl keeps entries until they are evicted.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithClock(maxEntries, ttl, clockwork.NewRealClock())
}

// NewMemoryCacheWithClock is NewMemoryCache with an injectable clock.
func NewMemoryCacheWithClock(maxEntries int, ttl time.Duration, clock clockwork.Clock) *MemoryCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &MemoryCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

// Get returns the cached score for key. It never fails.
func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return 0, false, nil
	}
	if c.expired(e) {
		c.drop(e)
		return 0, false, nil
	}
	c.moveToFront(e)
	return e.score, true, nil
}

// Put stores score under key, evicting the least recently used entry when
// the cache is full.
func (c *MemoryCache) Put(_ context.Context, key string, score float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.score = score
		e.expiresAt = c.deadline()
		c.moveToFront(e)
		return nil
	}

	e := &entry{key: key, score: score, expiresAt: c.deadline()}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.drop(c.tail)
	}
	return nil
}

// Len reports the number of entries, including expired ones not yet dropped.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) deadline() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.clock.Now().Add(c.ttl)
}

func (c *MemoryCache) expired(e *entry) bool {
	return !e.expiresAt.IsZero() && !c.clock.Now().Before(e.expiresAt)
}

func (c *MemoryCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *MemoryCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *MemoryCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *MemoryCache) drop(e *entry) {
	if e == nil {
		return
	}
	delete(c.entries, e.key)
	c.unlink(e)
}
