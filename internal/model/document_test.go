package model

import (
	"testing"
	"time"
)

func TestEventFromDocument_StringEncodedCoordinates(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"title": "Food Fair",
		"lat":   "14.5995",
		"lng":   "120.9842",
	})

	if ev.Lat == nil || ev.Lng == nil {
		t.Fatal("expected coordinates to be coerced from strings")
	}
	if *ev.Lat != 14.5995 {
		t.Errorf("expected lat=14.5995, got %f", *ev.Lat)
	}
	if *ev.Lng != 120.9842 {
		t.Errorf("expected lng=120.9842, got %f", *ev.Lng)
	}
}

func TestEventFromDocument_NonNumericCoordinatesDropped(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"lat": "not-a-number",
		"lng": true,
	})

	if ev.Lat != nil || ev.Lng != nil {
		t.Error("expected malformed coordinates to coerce to nil")
	}
}

func TestEventFromDocument_CustomAddressString(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"customAddress": "123 Rizal Ave, Manila",
	})

	if ev.CustomAddress == nil {
		t.Fatal("expected custom address")
	}
	if ev.CustomAddress.Label != "123 Rizal Ave, Manila" {
		t.Errorf("unexpected label %q", ev.CustomAddress.Label)
	}
	if ev.CustomAddress.Latitude != nil {
		t.Error("string-form custom address should carry no coordinates")
	}
}

func TestEventFromDocument_CustomAddressObject(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"customAddress": map[string]any{
			"label":     "Intramuros Gate",
			"latitude":  14.5891,
			"longitude": "120.9754",
		},
	})

	if ev.CustomAddress == nil {
		t.Fatal("expected custom address")
	}
	if ev.CustomAddress.Label != "Intramuros Gate" {
		t.Errorf("unexpected label %q", ev.CustomAddress.Label)
	}
	if ev.CustomAddress.Latitude == nil || *ev.CustomAddress.Latitude != 14.5891 {
		t.Error("expected object latitude")
	}
	if ev.CustomAddress.Longitude == nil || *ev.CustomAddress.Longitude != 120.9754 {
		t.Error("expected string-encoded longitude to be coerced")
	}
}

func TestEventFromDocument_Dates(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"startDate": "2025-06-10",
		"endDate":   "garbage",
	})

	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !ev.StartDate.Equal(want) {
		t.Errorf("expected start %v, got %v", want, ev.StartDate)
	}
	if !ev.EndDate.IsZero() {
		t.Error("expected unparsable end date to coerce to zero")
	}
}

func TestEventFromDocument_OpenToPublicDefaultsTrue(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{})
	if !ev.OpenToPublic {
		t.Error("missing openToPublic should default to true")
	}

	ev = EventFromDocument("e2", map[string]any{"openToPublic": "false"})
	if ev.OpenToPublic {
		t.Error("string-encoded false should be honored")
	}
}

func TestEventFromDocument_Recurrence(t *testing.T) {
	ev := EventFromDocument("e1", map[string]any{
		"recurrence": map[string]any{
			"frequency":  "Weekly",
			"daysOfWeek": []any{"Mon", "wed", 3},
		},
	})

	if ev.Recurrence == nil {
		t.Fatal("expected recurrence")
	}
	if ev.Recurrence.Frequency != FrequencyWeekly {
		t.Errorf("expected lowercased frequency, got %q", ev.Recurrence.Frequency)
	}
	if len(ev.Recurrence.DaysOfWeek) != 2 {
		t.Errorf("expected non-string entries dropped, got %v", ev.Recurrence.DaysOfWeek)
	}
}

func TestPlaceFromDocument_OpeningHours(t *testing.T) {
	p := PlaceFromDocument("p1", map[string]any{
		"name":      "Fort Santiago",
		"latitude":  "14.5958",
		"longitude": 120.9705,
		"openingHours": map[string]any{
			"Monday":  map[string]any{"open": "09:00", "close": "17:00"},
			"tue":     map[string]any{"closed": true},
			"someday": map[string]any{"open": "00:00"},
		},
	})

	if p.Latitude != 14.5958 {
		t.Errorf("expected coerced latitude, got %f", p.Latitude)
	}
	if len(p.OpeningHours) != 2 {
		t.Fatalf("expected 2 recognized weekday rows, got %d", len(p.OpeningHours))
	}
	mon := p.OpeningHours[time.Monday]
	if mon.Open != "09:00" || mon.Close != "17:00" || mon.Closed {
		t.Errorf("unexpected monday row: %+v", mon)
	}
	if !p.OpeningHours[time.Tuesday].Closed {
		t.Error("expected tuesday closed")
	}
}

func TestPlaceFromDocument_NoOpeningHours(t *testing.T) {
	p := PlaceFromDocument("p1", map[string]any{"name": "Viewpoint"})
	if p.OpeningHours != nil {
		t.Error("absent openingHours must stay nil, not empty map")
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want time.Weekday
		ok   bool
	}{
		{"mon", time.Monday, true},
		{"MON", time.Monday, true},
		{" Sunday ", time.Sunday, true},
		{"sat", time.Saturday, true},
		{"m", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseWeekday(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
