package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryEntries bounds a MemoryCache created with a non-positive limit.
const DefaultMemoryEntries = 512

// MemoryCache is an in-process cache for the HTTP server.
// When full, the entry closest to expiry (or the oldest, if none expire)
// is evicted.
type MemoryCache struct {
	mu      sync.Mutex
	max     int
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	storedAt  time.Time
	expiresAt time.Time
}

// NewMemoryCache creates a cache holding at most maxEntries values.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryCache{max: maxEntries, entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	e := memoryEntry{data: data, storedAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evict()
	}
	c.entries[key] = e
	return nil
}

// evict removes one entry. Callers hold c.mu.
func (c *MemoryCache) evict() {
	var victim string
	var best time.Time
	for k, e := range c.entries {
		t := e.expiresAt
		if t.IsZero() {
			t = e.storedAt.Add(TTLArtifact)
		}
		if victim == "" || t.Before(best) {
			victim, best = k, t
		}
	}
	delete(c.entries, victim)
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// evicted.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) Close() error { return nil }

var _ Cache = (*MemoryCache)(nil)
