package geo

import (
	"errors"
	"math"
	"testing"
)

func TestParseLatLng_Valid(t *testing.T) {
	lat, lng, err := ParseLatLng("14.5995", "120.9842")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 14.5995 {
		t.Errorf("expected lat=14.5995, got %f", lat)
	}
	if lng != 120.9842 {
		t.Errorf("expected lng=120.9842, got %f", lng)
	}
}

func TestParseLatLng_Whitespace(t *testing.T) {
	lat, lng, err := ParseLatLng(" 14.5995 ", " 120.9842 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 14.5995 || lng != 120.9842 {
		t.Errorf("unexpected parse result: %f,%f", lat, lng)
	}
}

func TestParseLatLng_Invalid(t *testing.T) {
	if _, _, err := ParseLatLng("abc", "120.9"); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
	if _, _, err := ParseLatLng("14.5", ""); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}
}

func TestParseLatLng_OutOfRange(t *testing.T) {
	if _, _, err := ParseLatLng("95.0", "120.0"); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates for lat > 90, got %v", err)
	}
	if _, _, err := ParseLatLng("14.0", "-200.0"); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates for lng < -180, got %v", err)
	}
}

func TestEqual_WithinEpsilon(t *testing.T) {
	if !Equal(14.5995, 120.9842, 14.5995, 120.9842) {
		t.Error("identical coordinates must compare equal")
	}
	// Differences smaller than Epsilon, e.g. from float serialization
	// round-trips.
	if !Equal(14.5995, 120.9842, 14.59950000001, 120.98419999999) {
		t.Error("sub-epsilon differences must compare equal")
	}
}

func TestEqual_OutsideEpsilon(t *testing.T) {
	if Equal(14.5995, 120.9842, 14.5996, 120.9842) {
		t.Error("a 1e-4 degree difference must not compare equal")
	}
}

func TestDistanceMeters_ZeroForSamePoint(t *testing.T) {
	d := DistanceMeters(14.5995, 120.9842, 14.5995, 120.9842)
	if d != 0 {
		t.Errorf("expected 0 distance, got %f", d)
	}
}

func TestDistanceMeters_SymmetricAndPositive(t *testing.T) {
	d1 := DistanceMeters(14.5995, 120.9842, 14.6095, 120.9842)
	d2 := DistanceMeters(14.6095, 120.9842, 14.5995, 120.9842)

	if d1 <= 0 || math.IsNaN(d1) {
		t.Fatalf("expected positive distance, got %f", d1)
	}
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance must be symmetric: %f vs %f", d1, d2)
	}
	// 0.01 degrees of latitude is roughly 1.1km on the ground; the 3857
	// projection inflates that by 1/cos(lat).
	if d1 < 900 || d1 > 1300 {
		t.Errorf("distance out of plausible range: %f", d1)
	}
}
