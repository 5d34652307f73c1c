package caching

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache, useful as a hot layer above Disk.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory creates a memory cache whose entries expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: gocache.New(ttl, 10*time.Minute)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	if val, found := m.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

func (m *Memory) Set(key string, data []byte) error {
	m.cache.Set(key, data, gocache.DefaultExpiration)
	return nil
}
