package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Disk is a file-based cache with a TTL. Each entry is one file named by
// its key; expiry is judged from the file's modification time.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates a disk cache rooted at dir, creating it if needed.
func NewDisk(dir string, ttl time.Duration) (*Disk, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Disk{dir: dir, ttl: ttl}, nil
}

func (d *Disk) Get(key string) ([]byte, bool) {
	path := filepath.Join(d.dir, key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > d.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (d *Disk) Set(key string, data []byte) error {
	path := filepath.Join(d.dir, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}
