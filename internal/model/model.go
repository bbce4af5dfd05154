// Package model defines the domain types shared across the resolver core:
// places, events, their recurrence rules, and the derived occurrence output.
package model

import (
	"errors"
	"time"
)

// ErrNotFound is returned by lookups for documents that do not exist.
var ErrNotFound = errors.New("not found")

// Recurrence frequency values accepted on event documents.
const (
	FrequencyOnce   = "once"
	FrequencyWeekly = "weekly"
)

// DayHours is a single weekday row of a place's opening-hours table.
type DayHours struct {
	Open   string `json:"open"`  // "HH:MM"
	Close  string `json:"close"` // "HH:MM"
	Closed bool   `json:"closed"`
}

// Place is a persisted point of interest. Places are created by an external
// admin tool and are read-only from this service's perspective.
type Place struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`

	// OpeningHours maps weekdays to their hours. A nil map means the place
	// has no opening-hours table at all ("Opening hours unavailable").
	OpeningHours map[time.Weekday]DayHours `json:"openingHours,omitempty"`

	SupportsAR         bool `json:"supportsAR"`
	AccessibleRestroom bool `json:"accessibleRestroom"`
}

// Recurrence is an event's optional weekly recurrence rule.
type Recurrence struct {
	Frequency  string   `json:"frequency"`  // "once" or "weekly"
	DaysOfWeek []string `json:"daysOfWeek"` // three-letter abbreviations, e.g. "mon"
}

// CustomAddress is the object form of an event's free-text address. Source
// documents may also carry a bare string; coercion folds that into Label.
type CustomAddress struct {
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Event is a persisted, possibly recurring activity. The location reference
// is one of: literal Lat/Lng, a Place reference via LocationID, or a
// CustomAddress. Events are read-only here.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image,omitempty"`

	// StartDate zero value means the document had no parsable start date;
	// such an event never occurs. EndDate zero value defaults to StartDate.
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate,omitempty"`

	// Time-of-day bounds as "HH:MM". Empty means unset; status resolution
	// substitutes the default window bounds.
	StartTime string `json:"eventStartTime,omitempty"`
	EndTime   string `json:"eventEndTime,omitempty"`

	OpenToPublic bool `json:"openToPublic"`

	Lat           *float64       `json:"lat,omitempty"`
	Lng           *float64       `json:"lng,omitempty"`
	LocationID    string         `json:"locationId,omitempty"`
	CustomAddress *CustomAddress `json:"customAddress,omitempty"`
	Address       string         `json:"address,omitempty"`

	Recurrence *Recurrence `json:"recurrence,omitempty"`
}

// ResolvedOccurrence is a concrete (event, date) pair with its display
// location applied. It is derived per query and never persisted.
type ResolvedOccurrence struct {
	Event         Event     `json:"event"`
	EffectiveDate time.Time `json:"effectiveDate"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	AddressLabel  string    `json:"addressLabel"`
}
