// Package location resolves an event's location reference (literal
// coordinates, a referenced place, or a free-text address) into a single
// display location.
package location

import (
	"context"
	"fmt"

	"github.com/zneright/tourkita-core/internal/model"
)

// UnresolvedLabel is the sentinel address label shown when no location can
// be derived for an event. Callers treat it as "cannot navigate".
const UnresolvedLabel = "N/A"

// PlaceLookup resolves a place by id against the place collection. It is
// injected so callers control caching and batching.
type PlaceLookup func(ctx context.Context, id string) (model.Place, error)

// Resolved is the output of location resolution. Nil coordinates mean the
// event's position could not be determined.
type Resolved struct {
	Latitude     *float64
	Longitude    *float64
	AddressLabel string
}

// Resolve applies the location priority order: literal coordinates, custom
// address, referenced place, free-text address. It performs at most one
// lookup call per invocation.
//
// On lookup failure the returned Resolved degrades to the UnresolvedLabel
// sentinel with nil coordinates, and the lookup error is returned alongside
// so the caller can report it. The caller must keep going: a failed lookup
// for one event never aborts an aggregation.
func Resolve(ctx context.Context, ev model.Event, lookup PlaceLookup) (Resolved, error) {
	// 1. Literal coordinates win outright.
	if ev.Lat != nil && ev.Lng != nil {
		res := Resolved{Latitude: ev.Lat, Longitude: ev.Lng}
		if ev.CustomAddress != nil {
			res.AddressLabel = ev.CustomAddress.Label
		}
		return res, nil
	}

	// 2. Custom address: coordinates only when the object form carries both.
	if ca := ev.CustomAddress; ca != nil && (ca.Label != "" || (ca.Latitude != nil && ca.Longitude != nil)) {
		res := Resolved{AddressLabel: ca.Label}
		if ca.Latitude != nil && ca.Longitude != nil {
			res.Latitude = ca.Latitude
			res.Longitude = ca.Longitude
		}
		return res, nil
	}

	// 3. Referenced place.
	if ev.LocationID != "" {
		if lookup == nil {
			return Resolved{AddressLabel: UnresolvedLabel}, fmt.Errorf("no place lookup configured for event %q", ev.ID)
		}
		place, err := lookup(ctx, ev.LocationID)
		if err != nil {
			return Resolved{AddressLabel: UnresolvedLabel},
				fmt.Errorf("resolving place %q for event %q: %w", ev.LocationID, ev.ID, err)
		}
		label := place.Address
		if label == "" {
			label = place.Name
		}
		lat, lng := place.Latitude, place.Longitude
		return Resolved{Latitude: &lat, Longitude: &lng, AddressLabel: label}, nil
	}

	// 4. Unresolved: fall back to the event's own free-text address.
	if ev.Address != "" {
		return Resolved{AddressLabel: ev.Address}, nil
	}
	return Resolved{AddressLabel: UnresolvedLabel}, nil
}
