// Package store defines the read interface over the place and event
// documents, with memory, SQLite and Postgres backends.
package store

import (
	"context"

	"github.com/zneright/tourkita-core/internal/model"
)

// ErrNotFound is returned when a place with the requested ID does not exist.
var ErrNotFound = model.ErrNotFound

// Store is the read interface used by the query service. Implementations
// must be safe for concurrent use.
type Store interface {
	// ListEvents returns all event documents.
	ListEvents(ctx context.Context) ([]model.Event, error)
	// ListPlaces returns all place documents.
	ListPlaces(ctx context.Context) ([]model.Place, error)
	// GetPlace returns the place with the given ID, or ErrNotFound.
	GetPlace(ctx context.Context, id string) (model.Place, error)
}
