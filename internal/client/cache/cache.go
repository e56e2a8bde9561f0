// Package cache persists the last known profile snapshot to the state
// directory. The snapshot is only patched after the server confirms a change,
// so it may be stale but never ahead of the server. Its main job is answering
// "is this book already saved" without a round trip.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/sieke13/bookshelf/internal/client/api"
)

const snapshotFileName = "saved_books.json"

type Cache struct {
	dir string
}

func New(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) path() string {
	return filepath.Join(c.dir, snapshotFileName)
}

// Load returns the cached profile, or nil when no snapshot exists. A snapshot
// that fails to decode is discarded rather than returned partially.
func (c *Cache) Load() (*api.Profile, error) {
	data, err := os.ReadFile(c.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var p api.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		_ = os.Remove(c.path())
		return nil, nil
	}
	return &p, nil
}

// Store replaces the snapshot with p.
func (c *Cache) Store(p *api.Profile) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(), data, 0o600)
}

// Clear removes the snapshot. A missing snapshot is not an error.
func (c *Cache) Clear() error {
	err := os.Remove(c.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// IsSaved reports whether the cached snapshot contains the given book id.
func (c *Cache) IsSaved(bookID string) bool {
	p, err := c.Load()
	if err != nil || p == nil {
		return false
	}

	for _, b := range p.SavedBooks {
		if b.BookID == bookID {
			return true
		}
	}
	return false
}
