// Package caching stores fetched page bodies so repeated captures of the
// same URL skip the network. Keys are opaque strings; callers usually pass
// a URL through Key first.
package caching

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache is a byte store with expiry handled by the implementation.
type Cache interface {
	// Get returns the cached data and true on a hit. Expired or unreadable
	// entries are misses.
	Get(key string) ([]byte, bool)
	// Set stores data under key, replacing any previous value.
	Set(key string, data []byte) error
}

// Key hashes a URL into a stable cache key safe for use as a filename.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])
}
