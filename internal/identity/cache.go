package identity

import (
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/Mivy_Go/internal/domain"
)

// cachedLink is what a successful resolution remembers about an external account
type cachedLink struct {
	Version  string
	UserID   string
	LinkID   string
	CachedAt time.Time
}

// lookupCache maps external identities to resolved users. Users are never
// hard-deleted, so a cached resolution stays valid until it expires.
type lookupCache struct {
	lru *expirable.LRU[string, *cachedLink]
}

func newLookupCache(size int, ttl time.Duration) *lookupCache {
	return &lookupCache{
		lru: expirable.NewLRU[string, *cachedLink](size, nil, ttl),
	}
}

func fidKey(fid int64) string {
	return string(domain.ProtocolFarcaster) + ":" + strconv.FormatInt(fid, 10)
}

func walletKey(address string) string {
	return string(domain.ProtocolWallet) + ":" + strings.ToLower(address)
}

func (c *lookupCache) Get(key string) (*cachedLink, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry, true
}

func (c *lookupCache) Set(key, userID, linkID string) {
	c.lru.Add(key, &cachedLink{
		Version:  CacheSchemaVersion,
		UserID:   userID,
		LinkID:   linkID,
		CachedAt: time.Now(),
	})
}

func (c *lookupCache) Len() int {
	return c.lru.Len()
}
