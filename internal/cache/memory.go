package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Memory is a thread-safe in-memory TTL cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates a memory cache. Pass enabled=false for a no-op cache.
func NewMemory(enabled bool) *Memory {
	c := &Memory{
		entries: make(map[string]entry),
		enabled: enabled,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if enabled {
		go c.evictLoop(5 * time.Minute)
	}
	return c
}

// Get retrieves a cached value.
func (c *Memory) Get(_ context.Context, key string) ([]byte, string, bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || c.now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores a value with a TTL.
func (c *Memory) Set(_ context.Context, key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: c.now().Add(ttl),
	}
	return etag
}

// Stats returns cache statistics.
func (c *Memory) Stats() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := c.now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]any{
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
	}
}

// Close stops the eviction loop.
func (c *Memory) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

func (c *Memory) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evict()
		case <-c.stop:
			return
		}
	}
}

func (c *Memory) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
