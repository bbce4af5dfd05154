// Package memory provides an in-memory store seeded from a JSON file.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/zneright/tourkita-core/internal/model"
)

// seed is the on-disk layout of a seed file: raw documents keyed the way
// the upstream document store exports them.
type seed struct {
	Places map[string]map[string]any `json:"places"`
	Events map[string]map[string]any `json:"events"`
}

// Store keeps places and events in maps guarded by a RWMutex.
type Store struct {
	mu     sync.RWMutex
	places map[string]model.Place
	events map[string]model.Event
	logger *slog.Logger
}

// NewStore returns an empty in-memory store.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		places: make(map[string]model.Place),
		events: make(map[string]model.Event),
		logger: logger,
	}
}

// LoadSeedFile reads a JSON seed file and replaces the store contents.
// Documents without an ID get one assigned.
func (s *Store) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var sd seed
	if err := json.Unmarshal(raw, &sd); err != nil {
		return fmt.Errorf("parsing seed file: %w", err)
	}

	places := make(map[string]model.Place, len(sd.Places))
	for id, doc := range sd.Places {
		if id == "" {
			id = uuid.New().String()
		}
		places[id] = model.PlaceFromDocument(id, doc)
	}
	events := make(map[string]model.Event, len(sd.Events))
	for id, doc := range sd.Events {
		if id == "" {
			id = uuid.New().String()
		}
		events[id] = model.EventFromDocument(id, doc)
	}

	s.mu.Lock()
	s.places = places
	s.events = events
	s.mu.Unlock()

	s.logger.Info("seed file loaded", "path", path, "places", len(places), "events", len(events))
	return nil
}

// PutPlace stores or replaces a place. Used by tests and the refresher.
func (s *Store) PutPlace(p model.Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.places[p.ID] = p
}

// PutEvent stores or replaces an event.
func (s *Store) PutEvent(ev model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	s.events[ev.ID] = ev
}

// ListEvents returns all events.
func (s *Store) ListEvents(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev)
	}
	return out, nil
}

// ListPlaces returns all places.
func (s *Store) ListPlaces(_ context.Context) ([]model.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Place, 0, len(s.places))
	for _, p := range s.places {
		out = append(out, p)
	}
	return out, nil
}

// GetPlace returns the place with the given ID.
func (s *Store) GetPlace(_ context.Context, id string) (model.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.places[id]
	if !ok {
		return model.Place{}, fmt.Errorf("place %q: %w", id, model.ErrNotFound)
	}
	return p, nil
}
