package model

import (
	"strconv"
	"strings"
	"time"
)

// dateLayout is the calendar-date format used on event documents.
const dateLayout = "2006-01-02"

// weekdayNames maps accepted weekday spellings (lowercase) to time.Weekday.
// Documents use three-letter abbreviations; opening-hours tables sometimes
// carry full names.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday resolves a weekday abbreviation or full name, case-insensitive.
func ParseWeekday(s string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	return wd, ok
}

// coerceString returns the value as a string, or "" when absent or not a string.
func coerceString(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

// coerceFloat handles numbers that arrive as float64, int, or string-encoded
// values. The hosted document store does not enforce field types, so
// "14.5995" and 14.5995 are both valid latitudes.
func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceFloatPtr is coerceFloat for optional fields.
func coerceFloatPtr(doc map[string]any, key string) *float64 {
	v, ok := doc[key]
	if !ok {
		return nil
	}
	f, ok := coerceFloat(v)
	if !ok {
		return nil
	}
	return &f
}

// coerceBool handles booleans that arrive as bool or string-encoded values.
func coerceBool(doc map[string]any, key string, fallback bool) bool {
	switch b := doc[key].(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.ToLower(b))
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// coerceDate parses a calendar date. Returns the zero time for anything
// unparsable; callers treat a zero StartDate as "never occurs".
func coerceDate(doc map[string]any, key string) time.Time {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

func coerceStringSlice(v any) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func subDocument(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// EventFromDocument builds an Event from a loosely-typed document record.
// Missing or malformed optional fields degrade to their zero values; the
// only field that can invalidate an event is StartDate, and even that is
// expressed as a zero time rather than an error.
func EventFromDocument(id string, doc map[string]any) Event {
	ev := Event{
		ID:           id,
		Title:        coerceString(doc, "title"),
		Description:  coerceString(doc, "description"),
		ImageURL:     coerceString(doc, "image"),
		StartDate:    coerceDate(doc, "startDate"),
		EndDate:      coerceDate(doc, "endDate"),
		StartTime:    coerceString(doc, "eventStartTime"),
		EndTime:      coerceString(doc, "eventEndTime"),
		OpenToPublic: coerceBool(doc, "openToPublic", true),
		Lat:          coerceFloatPtr(doc, "lat"),
		Lng:          coerceFloatPtr(doc, "lng"),
		LocationID:   coerceString(doc, "locationId"),
		Address:      coerceString(doc, "address"),
	}

	// customAddress arrives as either a bare string or an object with
	// latitude/longitude/label.
	switch ca := doc["customAddress"].(type) {
	case string:
		if ca != "" {
			ev.CustomAddress = &CustomAddress{Label: ca}
		}
	case map[string]any:
		ev.CustomAddress = &CustomAddress{
			Label:     coerceString(ca, "label"),
			Latitude:  coerceFloatPtr(ca, "latitude"),
			Longitude: coerceFloatPtr(ca, "longitude"),
		}
	}

	if rec, ok := subDocument(doc["recurrence"]); ok {
		ev.Recurrence = &Recurrence{
			Frequency:  strings.ToLower(coerceString(rec, "frequency")),
			DaysOfWeek: coerceStringSlice(rec["daysOfWeek"]),
		}
	}

	return ev
}

// PlaceFromDocument builds a Place from a loosely-typed document record.
func PlaceFromDocument(id string, doc map[string]any) Place {
	p := Place{
		ID:                 id,
		Name:               coerceString(doc, "name"),
		Category:           coerceString(doc, "category"),
		Address:            coerceString(doc, "address"),
		SupportsAR:         coerceBool(doc, "supportsAR", false),
		AccessibleRestroom: coerceBool(doc, "accessibleRestroom", false),
	}

	if lat, ok := coerceFloat(doc["latitude"]); ok {
		p.Latitude = lat
	}
	if lng, ok := coerceFloat(doc["longitude"]); ok {
		p.Longitude = lng
	}

	if hours, ok := subDocument(doc["openingHours"]); ok {
		p.OpeningHours = OpeningHoursFromDocument(hours)
	}

	return p
}

// OpeningHoursFromDocument coerces a per-weekday hours table. Rows keyed by
// unrecognized weekday names are dropped.
func OpeningHoursFromDocument(doc map[string]any) map[time.Weekday]DayHours {
	out := make(map[time.Weekday]DayHours, len(doc))
	for name, v := range doc {
		wd, ok := ParseWeekday(name)
		if !ok {
			continue
		}
		row, ok := subDocument(v)
		if !ok {
			continue
		}
		out[wd] = DayHours{
			Open:   coerceString(row, "open"),
			Close:  coerceString(row, "close"),
			Closed: coerceBool(row, "closed", false),
		}
	}
	return out
}
