// Package temporal decides whether an event occurs on a given calendar date
// and enumerates occurrence dates within a bounded range. It is pure: no
// I/O, no global clock.
package temporal

import (
	"time"

	"github.com/zneright/tourkita-core/internal/model"
)

// DateOnly truncates a timestamp to its calendar date at UTC midnight. All
// date comparisons in this package operate on DateOnly values.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Span returns the effective [start, end] date span of an event. An event
// with no parsable start date has no span. An end date before the start date
// collapses to a single-day span at the start date, never a negative range.
func Span(ev model.Event) (start, end time.Time, ok bool) {
	if ev.StartDate.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	start = DateOnly(ev.StartDate)
	end = start
	if !ev.EndDate.IsZero() {
		if e := DateOnly(ev.EndDate); !e.Before(start) {
			end = e
		}
	}
	return start, end, true
}

// weekdaySet resolves a recurrence's day abbreviations into a lookup set.
// Unrecognized entries are dropped.
func weekdaySet(days []string) map[time.Weekday]bool {
	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		if wd, ok := model.ParseWeekday(d); ok {
			set[wd] = true
		}
	}
	return set
}

// isWeekly reports whether the event carries a usable weekly rule. A
// recurrence with days but no weekly frequency is inconsistent data and is
// treated as non-recurring.
func isWeekly(ev model.Event) (map[time.Weekday]bool, bool) {
	if ev.Recurrence == nil || ev.Recurrence.Frequency != model.FrequencyWeekly {
		return nil, false
	}
	set := weekdaySet(ev.Recurrence.DaysOfWeek)
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

// OccursOn reports whether the event is active on the given calendar date.
// Both span bounds are inclusive. For weekly events the date must also fall
// on one of the rule's weekdays.
func OccursOn(ev model.Event, date time.Time) bool {
	start, end, ok := Span(ev)
	if !ok {
		return false
	}
	d := DateOnly(date)
	if d.Before(start) || d.After(end) {
		return false
	}
	if days, weekly := isWeekly(ev); weekly {
		return days[d.Weekday()]
	}
	return true
}

// OccurrencesInRange enumerates every date in [rangeStart, rangeEnd] on
// which the event occurs. Callers must supply a bounded window (typically
// one calendar month); this function never loops beyond it.
func OccurrencesInRange(ev model.Event, rangeStart, rangeEnd time.Time) []time.Time {
	start, end, ok := Span(ev)
	if !ok {
		return nil
	}

	lo := DateOnly(rangeStart)
	hi := DateOnly(rangeEnd)
	if start.After(lo) {
		lo = start
	}
	if end.Before(hi) {
		hi = end
	}
	if lo.After(hi) {
		return nil
	}

	var out []time.Time
	for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
		if OccursOn(ev, d) {
			out = append(out, d)
		}
	}
	return out
}
