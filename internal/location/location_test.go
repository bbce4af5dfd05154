package location

import (
	"context"
	"errors"
	"testing"

	"github.com/zneright/tourkita-core/internal/model"
)

func fptr(f float64) *float64 { return &f }

func TestResolve_LiteralCoordinatesWin(t *testing.T) {
	calls := 0
	lookup := func(ctx context.Context, id string) (model.Place, error) {
		calls++
		return model.Place{}, nil
	}

	ev := model.Event{
		ID:         "e1",
		Lat:        fptr(1),
		Lng:        fptr(2),
		LocationID: "p1",
	}

	res, err := Resolve(context.Background(), ev, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Latitude == nil || *res.Latitude != 1 || res.Longitude == nil || *res.Longitude != 2 {
		t.Errorf("expected literal coordinates {1,2}, got %+v", res)
	}
	if calls != 0 {
		t.Errorf("placeLookup must not be called when literal coordinates exist, got %d calls", calls)
	}
}

func TestResolve_LiteralCoordinatesWithCustomLabel(t *testing.T) {
	ev := model.Event{
		Lat:           fptr(14.59),
		Lng:           fptr(120.97),
		CustomAddress: &model.CustomAddress{Label: "Plaza Roma"},
	}

	res, err := Resolve(context.Background(), ev, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddressLabel != "Plaza Roma" {
		t.Errorf("expected custom label, got %q", res.AddressLabel)
	}
}

func TestResolve_CustomAddressObject(t *testing.T) {
	ev := model.Event{
		CustomAddress: &model.CustomAddress{
			Label:     "Intramuros Gate",
			Latitude:  fptr(14.5891),
			Longitude: fptr(120.9754),
		},
		LocationID: "p1", // must be ignored: custom address has priority
	}

	res, err := Resolve(context.Background(), ev, func(ctx context.Context, id string) (model.Place, error) {
		t.Fatal("placeLookup must not be called")
		return model.Place{}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Latitude == nil || *res.Latitude != 14.5891 {
		t.Errorf("expected custom address coordinates, got %+v", res)
	}
	if res.AddressLabel != "Intramuros Gate" {
		t.Errorf("unexpected label %q", res.AddressLabel)
	}
}

func TestResolve_CustomAddressStringOnly(t *testing.T) {
	ev := model.Event{CustomAddress: &model.CustomAddress{Label: "123 Rizal Ave"}}

	res, err := Resolve(context.Background(), ev, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Latitude != nil || res.Longitude != nil {
		t.Error("string-form custom address resolves without coordinates")
	}
	if res.AddressLabel != "123 Rizal Ave" {
		t.Errorf("unexpected label %q", res.AddressLabel)
	}
}

func TestResolve_PlaceReference(t *testing.T) {
	ev := model.Event{ID: "e1", LocationID: "p1"}
	lookup := func(ctx context.Context, id string) (model.Place, error) {
		if id != "p1" {
			t.Errorf("expected lookup of p1, got %q", id)
		}
		return model.Place{
			ID: "p1", Name: "Fort Santiago",
			Latitude: 14.5958, Longitude: 120.9705,
			Address: "Intramuros, Manila",
		}, nil
	}

	res, err := Resolve(context.Background(), ev, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Latitude == nil || *res.Latitude != 14.5958 {
		t.Errorf("expected place coordinates, got %+v", res)
	}
	if res.AddressLabel != "Intramuros, Manila" {
		t.Errorf("unexpected label %q", res.AddressLabel)
	}
}

func TestResolve_PlaceNameFallbackLabel(t *testing.T) {
	ev := model.Event{LocationID: "p1"}
	lookup := func(ctx context.Context, id string) (model.Place, error) {
		return model.Place{ID: "p1", Name: "Fort Santiago"}, nil
	}

	res, err := Resolve(context.Background(), ev, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddressLabel != "Fort Santiago" {
		t.Errorf("expected place name fallback, got %q", res.AddressLabel)
	}
}

func TestResolve_LookupFailureDegrades(t *testing.T) {
	lookupErr := errors.New("not found")
	ev := model.Event{ID: "e1", LocationID: "missing"}
	lookup := func(ctx context.Context, id string) (model.Place, error) {
		return model.Place{}, lookupErr
	}

	res, err := Resolve(context.Background(), ev, lookup)
	if !errors.Is(err, lookupErr) {
		t.Errorf("expected wrapped lookup error, got %v", err)
	}
	if res.AddressLabel != UnresolvedLabel {
		t.Errorf("expected %q sentinel, got %q", UnresolvedLabel, res.AddressLabel)
	}
	if res.Latitude != nil || res.Longitude != nil {
		t.Error("coordinates must stay nil on lookup failure")
	}
}

func TestResolve_FreeTextAddressFallback(t *testing.T) {
	ev := model.Event{Address: "Ermita, Manila"}

	res, err := Resolve(context.Background(), ev, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddressLabel != "Ermita, Manila" {
		t.Errorf("unexpected label %q", res.AddressLabel)
	}
}

func TestResolve_NothingResolvable(t *testing.T) {
	res, err := Resolve(context.Background(), model.Event{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AddressLabel != UnresolvedLabel {
		t.Errorf("expected %q, got %q", UnresolvedLabel, res.AddressLabel)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	ev := model.Event{LocationID: "p1"}
	lookup := func(ctx context.Context, id string) (model.Place, error) {
		return model.Place{ID: "p1", Name: "Fort Santiago", Latitude: 1, Longitude: 2}, nil
	}

	first, err1 := Resolve(context.Background(), ev, lookup)
	second, err2 := Resolve(context.Background(), ev, lookup)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if *first.Latitude != *second.Latitude || first.AddressLabel != second.AddressLabel {
		t.Error("Resolve must be deterministic for identical inputs")
	}
}
