package membership

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// statusEntry is one gating decision. ExpiresAt is the end of the held
// membership and is zero for denials.
type statusEntry struct {
	Allowed   bool
	ExpiresAt time.Time
}

// StatusCache remembers gating decisions per (viewer, creator, tier)
type StatusCache struct {
	lru *expirable.LRU[string, statusEntry]
}

// NewStatusCache creates a cache bounded by size with entries living for ttl
func NewStatusCache(size int, ttl time.Duration) *StatusCache {
	return &StatusCache{
		lru: expirable.NewLRU[string, statusEntry](size, nil, ttl),
	}
}

// Get returns a cached decision. A grant whose membership has ended by now
// is dropped and reported as a miss.
func (c *StatusCache) Get(viewerID, creatorID, tierID string, now time.Time) (bool, bool) {
	key := makeKey(viewerID, creatorID, tierID)
	entry, ok := c.lru.Get(key)
	if !ok {
		return false, false
	}
	if entry.Allowed && !now.Before(entry.ExpiresAt) {
		c.lru.Remove(key)
		return false, false
	}
	return entry.Allowed, true
}

// Set stores a decision. Grants carry the held membership's expiresAt.
func (c *StatusCache) Set(viewerID, creatorID, tierID string, allowed bool, expiresAt time.Time) {
	c.lru.Add(makeKey(viewerID, creatorID, tierID), statusEntry{Allowed: allowed, ExpiresAt: expiresAt})
}

// Invalidate drops every cached decision for (viewer, creator)
func (c *StatusCache) Invalidate(viewerID, creatorID string) {
	prefix := pairPrefix(viewerID, creatorID)
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
}

// InvalidateAll clears the entire cache
func (c *StatusCache) InvalidateAll() {
	c.lru.Purge()
}

// Size returns the current number of cached entries
func (c *StatusCache) Size() int {
	return c.lru.Len()
}

func pairPrefix(viewerID, creatorID string) string {
	return viewerID + "|" + creatorID + "|"
}

func makeKey(viewerID, creatorID, tierID string) string {
	return pairPrefix(viewerID, creatorID) + tierID
}
