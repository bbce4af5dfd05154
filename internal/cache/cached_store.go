package cache

import (
	"context"
	"log/slog"

	"github.com/zneright/tourkita-core/internal/model"
	"github.com/zneright/tourkita-core/internal/store"
)

// CachedStore wraps a store.Store and serves GetPlace from the cache.
// List operations always go to the underlying store.
type CachedStore struct {
	inner  store.Store
	cache  PlaceCache
	logger *slog.Logger
}

// NewCachedStore wraps inner with cache.
func NewCachedStore(inner store.Store, cache PlaceCache, logger *slog.Logger) *CachedStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedStore{inner: inner, cache: cache, logger: logger}
}

// WarmUp lists all places from the underlying store and preloads the cache.
func (s *CachedStore) WarmUp(ctx context.Context) error {
	places, err := s.inner.ListPlaces(ctx)
	if err != nil {
		return err
	}
	for _, p := range places {
		s.cache.Set(ctx, p)
	}
	s.logger.Info("place cache warmed", "places", len(places))
	return nil
}

// ListEvents delegates to the underlying store.
func (s *CachedStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.inner.ListEvents(ctx)
}

// ListPlaces delegates to the underlying store.
func (s *CachedStore) ListPlaces(ctx context.Context) ([]model.Place, error) {
	return s.inner.ListPlaces(ctx)
}

// GetPlace returns the cached place when present, otherwise fetches it from
// the store and caches the result.
func (s *CachedStore) GetPlace(ctx context.Context, id string) (model.Place, error) {
	if p, ok := s.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := s.inner.GetPlace(ctx, id)
	if err != nil {
		return model.Place{}, err
	}
	s.cache.Set(ctx, p)
	return p, nil
}
