package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemorySeenCache marks webhook ids as seen in process memory. It is the
// fallback when Redis is not configured and only protects a single replica.
type MemorySeenCache struct {
	items *gocache.Cache
}

// NewMemorySeenCache creates an in-process seen-marker cache
func NewMemorySeenCache(ttl time.Duration) *MemorySeenCache {
	return &MemorySeenCache{
		items: gocache.New(ttl, 5*time.Minute),
	}
}

// MarkSeen records key and reports whether it was new
func (c *MemorySeenCache) MarkSeen(_ context.Context, key string) (bool, error) {
	if err := c.items.Add(key, struct{}{}, gocache.DefaultExpiration); err != nil {
		return false, nil
	}
	return true, nil
}

// Forget removes key so a redelivery is processed again
func (c *MemorySeenCache) Forget(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}
