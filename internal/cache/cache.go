// Package cache provides place caching in front of the store: a process-local
// map cache and an optional Redis-backed cache.
package cache

import (
	"context"
	"sync"

	"github.com/zneright/tourkita-core/internal/model"
)

// PlaceCache caches place documents by ID.
type PlaceCache interface {
	Get(ctx context.Context, id string) (model.Place, bool)
	Set(ctx context.Context, place model.Place)
	Clear(ctx context.Context)
}

// MemoryCache is a map-backed PlaceCache guarded by a RWMutex.
type MemoryCache struct {
	mu     sync.RWMutex
	places map[string]model.Place
}

// NewMemoryCache initializes an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{places: make(map[string]model.Place)}
}

// Get returns the cached place for id.
func (c *MemoryCache) Get(_ context.Context, id string) (model.Place, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.places[id]
	return p, ok
}

// Set stores a place in the cache.
func (c *MemoryCache) Set(_ context.Context, place model.Place) {
	if place.ID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.places[place.ID] = place
}

// Clear drops all cached places.
func (c *MemoryCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.places = make(map[string]model.Place)
}

// Len returns the number of cached places.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.places)
}
