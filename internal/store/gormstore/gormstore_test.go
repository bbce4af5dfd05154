package gormstore

import (
	"testing"
	"time"

	"github.com/zneright/tourkita-core/internal/model"
)

func floatPtr(f float64) *float64 { return &f }

func TestPlaceRecordRoundTrip(t *testing.T) {
	place := model.Place{
		ID:        "fort-santiago",
		Name:      "Fort Santiago",
		Category:  "Historical",
		Latitude:  14.5945,
		Longitude: 120.9697,
		Address:   "Intramuros, Manila",
		OpeningHours: map[time.Weekday]model.DayHours{
			time.Monday:  {Open: "08:00", Close: "22:00"},
			time.Tuesday: {Closed: true},
		},
		SupportsAR: true,
	}

	rec, err := placeRecord(place)
	if err != nil {
		t.Fatalf("placeRecord: %v", err)
	}
	got := rec.toDomain()

	if got.ID != place.ID || got.Name != place.Name || got.Category != place.Category {
		t.Errorf("got %+v", got)
	}
	if len(got.OpeningHours) != 2 {
		t.Fatalf("opening hours = %+v", got.OpeningHours)
	}
	if got.OpeningHours[time.Monday].Open != "08:00" {
		t.Errorf("monday = %+v", got.OpeningHours[time.Monday])
	}
	if !got.OpeningHours[time.Tuesday].Closed {
		t.Error("tuesday should stay closed")
	}
}

func TestPlaceRecordNilOpeningHours(t *testing.T) {
	rec, err := placeRecord(model.Place{ID: "p1", Name: "Casa Manila"})
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.toDomain(); got.OpeningHours != nil {
		t.Errorf("opening hours should stay nil, got %+v", got.OpeningHours)
	}
}

func TestEventRecordRoundTrip(t *testing.T) {
	event := model.Event{
		ID:           "ev-1",
		Title:        "Night Tour",
		StartDate:    time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		EndTime:      "21:00",
		OpenToPublic: true,
		LocationID:   "fort-santiago",
		CustomAddress: &model.CustomAddress{
			Label:     "Plaza Moriones",
			Latitude:  floatPtr(14.5950),
			Longitude: floatPtr(120.9700),
		},
		Recurrence: &model.Recurrence{
			Frequency:  model.FrequencyWeekly,
			DaysOfWeek: []string{"tue", "thu"},
		},
	}

	rec, err := eventRecord(event)
	if err != nil {
		t.Fatalf("eventRecord: %v", err)
	}
	got := rec.toDomain()

	if got.Title != event.Title || got.LocationID != event.LocationID {
		t.Errorf("got %+v", got)
	}
	if got.CustomAddress == nil || got.CustomAddress.Label != "Plaza Moriones" {
		t.Errorf("custom address = %+v", got.CustomAddress)
	}
	if got.Recurrence == nil || got.Recurrence.Frequency != model.FrequencyWeekly {
		t.Errorf("recurrence = %+v", got.Recurrence)
	}
	if len(got.Recurrence.DaysOfWeek) != 2 {
		t.Errorf("days = %v", got.Recurrence.DaysOfWeek)
	}
}

func TestEventRecordNilParts(t *testing.T) {
	rec, err := eventRecord(model.Event{ID: "ev-2", Title: "One-off"})
	if err != nil {
		t.Fatal(err)
	}
	got := rec.toDomain()
	if got.CustomAddress != nil || got.Recurrence != nil {
		t.Errorf("nil document parts should survive the round trip, got %+v", got)
	}
}
