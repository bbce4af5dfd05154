// Package query is the aggregation layer over the store: it evaluates event
// occurrences, resolves their locations concurrently, and derives place
// status.
package query

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/zneright/tourkita-core/internal/clock"
	"github.com/zneright/tourkita-core/internal/geo"
	"github.com/zneright/tourkita-core/internal/influx"
	"github.com/zneright/tourkita-core/internal/location"
	"github.com/zneright/tourkita-core/internal/model"
	"github.com/zneright/tourkita-core/internal/report"
	"github.com/zneright/tourkita-core/internal/status"
	"github.com/zneright/tourkita-core/internal/store"
	"github.com/zneright/tourkita-core/internal/temporal"
)

// DefaultTimeout bounds a single query's store and lookup work.
const DefaultTimeout = 10 * time.Second

// Dependencies holds everything the query service needs.
type Dependencies struct {
	Store    store.Store
	Clock    clock.Clock
	Reporter report.Reporter
	Logger   *slog.Logger
	Influx   *influx.Manager
	Timeout  time.Duration
}

// Service answers the occurrence, proximity and status queries.
type Service struct {
	deps Dependencies
}

// NewService validates and applies defaults to deps.
func NewService(deps Dependencies) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.System{}
	}
	if deps.Reporter == nil {
		deps.Reporter = report.Discard{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	return &Service{deps: deps}
}

func (s *Service) recordQuery(op string, started time.Time, results int) {
	if s.deps.Influx != nil {
		s.deps.Influx.WriteQueryPoint(op, time.Since(started), results)
	}
	recordQueryMetric(op, time.Since(started))
}

// EventsOccurringOn returns the resolved occurrences of all events on the
// given calendar date, sorted by start time. Lookup failures degrade the
// affected occurrence and are reported, never returned.
func (s *Service) EventsOccurringOn(ctx context.Context, date time.Time) ([]model.ResolvedOccurrence, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	events, err := s.deps.Store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	day := temporal.DateOnly(date)
	matching := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if temporal.OccursOn(ev, day) {
			matching = append(matching, ev)
		}
	}
	// deterministic base order before the start-time sort
	sort.Slice(matching, func(i, j int) bool { return matching[i].ID < matching[j].ID })

	resolved := s.resolveAll(ctx, "events_on", matching)

	out := make([]model.ResolvedOccurrence, 0, len(matching))
	for _, ev := range matching {
		loc := resolved[ev.ID]
		out = append(out, model.ResolvedOccurrence{
			Event:         ev,
			EffectiveDate: day,
			Latitude:      loc.Latitude,
			Longitude:     loc.Longitude,
			AddressLabel:  loc.AddressLabel,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Event.StartTime < out[j].Event.StartTime
	})

	s.recordQuery("events_on", started, len(out))
	return out, nil
}

// EventsOccurringToday is EventsOccurringOn at the injected clock's now.
func (s *Service) EventsOccurringToday(ctx context.Context) ([]model.ResolvedOccurrence, error) {
	return s.EventsOccurringOn(ctx, s.deps.Clock.Now())
}

// EventsOccurringInMonth maps each day of the month (1-based) to the events
// occurring on it. Days without events are absent from the map.
func (s *Service) EventsOccurringInMonth(ctx context.Context, year int, month time.Month) (map[int][]model.Event, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	events, err := s.deps.Store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	byDay := make(map[int][]model.Event)
	total := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		for _, ev := range events {
			if temporal.OccursOn(ev, day) {
				byDay[day.Day()] = append(byDay[day.Day()], ev)
				total++
			}
		}
	}

	s.recordQuery("events_month", started, total)
	return byDay, nil
}

// EventsNear returns the occurrences on date that take place at the queried
// point. Events at a shared place match by place ID; events with literal or
// custom coordinates match when both axes are within geo.Epsilon.
func (s *Service) EventsNear(ctx context.Context, lat, lng float64, date time.Time) ([]model.ResolvedOccurrence, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	occurrences, err := s.EventsOccurringOn(ctx, date)
	if err != nil {
		return nil, err
	}

	// events anchored to a place whose coordinates match the query point
	matchingPlaces := make(map[string]bool)
	places, err := s.deps.Store.ListPlaces(ctx)
	if err != nil {
		s.deps.Reporter.Report(ctx, err, map[string]any{"operation": "events_near"})
	} else {
		for _, p := range places {
			if geo.Equal(p.Latitude, p.Longitude, lat, lng) {
				matchingPlaces[p.ID] = true
			}
		}
	}

	out := make([]model.ResolvedOccurrence, 0)
	for _, occ := range occurrences {
		if occ.Event.LocationID != "" && matchingPlaces[occ.Event.LocationID] {
			out = append(out, occ)
			continue
		}
		if occ.Latitude != nil && occ.Longitude != nil &&
			geo.Equal(*occ.Latitude, *occ.Longitude, lat, lng) {
			out = append(out, occ)
		}
	}

	// closest first; occurrences without resolved coordinates sort last
	sort.SliceStable(out, func(i, j int) bool {
		return nearDistance(out[i], lat, lng) < nearDistance(out[j], lat, lng)
	})

	s.recordQuery("events_near", started, len(out))
	return out, nil
}

func nearDistance(occ model.ResolvedOccurrence, lat, lng float64) float64 {
	if occ.Latitude == nil || occ.Longitude == nil {
		return math.MaxFloat64
	}
	return geo.DistanceMeters(*occ.Latitude, *occ.Longitude, lat, lng)
}

// PlaceStatus derives the open/closed label for a place at the clock's now.
func (s *Service) PlaceStatus(ctx context.Context, placeID string) (string, error) {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	place, err := s.deps.Store.GetPlace(ctx, placeID)
	if err != nil {
		return "", err
	}
	events, err := s.deps.Store.ListEvents(ctx)
	if err != nil {
		return "", err
	}

	label := status.GetOpenStatus(place, events, s.deps.Clock.Now())
	s.recordQuery("place_status", started, 1)
	return label, nil
}

// resolveAll runs location resolution for each event concurrently and
// collects the results keyed by event ID. Failures are reported and leave
// the degraded result in place.
func (s *Service) resolveAll(ctx context.Context, op string, events []model.Event) map[string]location.Resolved {
	results := make(map[string]location.Resolved, len(events))
	var mu sync.Mutex
	var wg sync.WaitGroup

	lookup := func(ctx context.Context, id string) (model.Place, error) {
		return s.deps.Store.GetPlace(ctx, id)
	}

	for _, ev := range events {
		wg.Add(1)
		go func(ev model.Event) {
			defer wg.Done()
			loc, err := location.Resolve(ctx, ev, lookup)
			if err != nil {
				s.deps.Reporter.Report(ctx, err, map[string]any{
					"operation": op,
					"event":     ev.ID,
				})
				if s.deps.Influx != nil {
					s.deps.Influx.WriteFailurePoint(op, ev.ID)
				}
			}
			mu.Lock()
			results[ev.ID] = loc
			mu.Unlock()
		}(ev)
	}
	wg.Wait()

	return results
}
