// Package status determines a place's current open/closed label from its
// weekly opening-hours table and the event set. Pure and synchronous: the
// caller pre-fetches events and injects the evaluation time.
package status

import (
	"time"

	"github.com/zneright/tourkita-core/internal/model"
	"github.com/zneright/tourkita-core/internal/temporal"
)

// Status labels surfaced to callers.
const (
	ClosedPrivateEvent = "Closed due to private event"
	ClosedToday        = "Closed today"
	ClosedNow          = "Closed now"
	HoursUnavailable   = "Opening hours unavailable"
	openUntilPrefix    = "Open now until "
)

// Default time-of-day window bounds applied when an event's own bounds are
// missing. Named so the boundary behavior stays testable.
const (
	DefaultEventStart = "00:00"
	DefaultEventEnd   = "23:59"
)

// timeOfDay formats a timestamp as "HH:MM" for lexicographic comparison
// against document time fields. Lexicographic "HH:MM" ordering matches
// chronological ordering per day, with no timezone parsing.
func timeOfDay(t time.Time) string {
	return t.Format("15:04")
}

// withinWindow reports whether a "HH:MM" value falls inside [start, end],
// substituting the default bounds for missing ones.
func withinWindow(hm, start, end string) bool {
	if start == "" {
		start = DefaultEventStart
	}
	if end == "" {
		end = DefaultEventEnd
	}
	return start <= hm && hm <= end
}

// ClosedDueToPrivateEvent reports whether a private (not open to public)
// event at the place is active at the given time. Only events referencing
// the place by locationId count; coordinate proximity never suppresses a
// place's status.
func ClosedDueToPrivateEvent(placeID string, events []model.Event, now time.Time) bool {
	if placeID == "" {
		return false
	}
	now = now.UTC()
	hm := timeOfDay(now)
	for _, ev := range events {
		if ev.OpenToPublic || ev.LocationID != placeID {
			continue
		}
		if !temporal.OccursOn(ev, now) {
			continue
		}
		if withinWindow(hm, ev.StartTime, ev.EndTime) {
			return true
		}
	}
	return false
}

// GetOpenStatus resolves a place's display status at the given time. An
// active private event overrides the opening-hours table entirely. The
// evaluation basis is UTC: the weekday row, the time-of-day window and the
// occurrence date all derive from the same UTC instant.
func GetOpenStatus(place model.Place, events []model.Event, now time.Time) string {
	now = now.UTC()
	if ClosedDueToPrivateEvent(place.ID, events, now) {
		return ClosedPrivateEvent
	}

	if place.OpeningHours == nil {
		return HoursUnavailable
	}

	today, ok := place.OpeningHours[now.Weekday()]
	if !ok || today.Closed || today.Open == "" || today.Close == "" {
		return ClosedToday
	}

	if withinWindow(timeOfDay(now), today.Open, today.Close) {
		return openUntilPrefix + today.Close
	}
	return ClosedNow
}
