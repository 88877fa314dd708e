package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCleanupInterval = time.Hour

// Memory is an in-process TrustCache.
type Memory struct {
	c *gocache.Cache
}

// NewMemory returns a Memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, memoryCleanupInterval)}
}

// Get returns the cached score for key.
func (m *Memory) Get(_ context.Context, key string) (float64, bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return 0, false, nil
	}
	score, ok := v.(float64)
	return score, ok, nil
}

// Set stores score under key with the default expiration.
func (m *Memory) Set(_ context.Context, key string, score float64) error {
	m.c.Set(key, score, gocache.DefaultExpiration)
	return nil
}
