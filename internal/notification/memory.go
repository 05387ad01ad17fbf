package notification

import (
	"context"
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore is the bounded in-process fallback used when Redis is not configured
type MemoryStore struct {
	lru *expirable.LRU[int64, Details]
}

// NewMemoryStore creates an LRU store whose entries expire after ttl
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = MemoryStoreCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{lru: expirable.NewLRU[int64, Details](capacity, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, fid int64) (*Details, error) {
	if err := checkFid(fid); err != nil {
		return nil, err
	}
	d, ok := s.lru.Get(fid)
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *MemoryStore) Set(_ context.Context, fid int64, details Details) error {
	if err := checkFid(fid); err != nil {
		return err
	}
	s.lru.Add(fid, details)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, fid int64) error {
	if err := checkFid(fid); err != nil {
		return err
	}
	s.lru.Remove(fid)
	return nil
}

// List returns live entries ordered by fid
func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	out := []Entry{}
	for _, fid := range s.lru.Keys() {
		if d, ok := s.lru.Peek(fid); ok {
			out = append(out, Entry{Fid: fid, Details: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fid < out[j].Fid })
	return out, nil
}
