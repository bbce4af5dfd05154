package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zneright/tourkita-core/internal/model"
)

const seedJSON = `{
  "places": {
    "fort-santiago": {
      "name": "Fort Santiago",
      "category": "Historical",
      "latitude": 14.5945,
      "longitude": 120.9697,
      "address": "Intramuros, Manila",
      "openingHours": {
        "monday": {"open": "08:00", "close": "22:00"}
      }
    }
  },
  "events": {
    "ev-1": {
      "title": "Night Tour",
      "startDate": "2025-06-10",
      "endDate": "2025-06-12",
      "locationId": "fort-santiago"
    },
    "": {
      "title": "Unnamed"
    }
  }
}`

func writeSeed(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(seedJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeedFile(t *testing.T) {
	s := NewStore(nil)
	if err := s.LoadSeedFile(writeSeed(t)); err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}

	ctx := context.Background()

	place, err := s.GetPlace(ctx, "fort-santiago")
	if err != nil {
		t.Fatalf("GetPlace: %v", err)
	}
	if place.Name != "Fort Santiago" {
		t.Errorf("name = %q", place.Name)
	}
	if place.OpeningHours == nil {
		t.Error("opening hours should be parsed")
	}

	events, err := s.ListEvents(ctx)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.ID == "" {
			t.Error("event without seed ID should get one assigned")
		}
	}
}

func TestLoadSeedFileMissing(t *testing.T) {
	s := NewStore(nil)
	if err := s.LoadSeedFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing seed file")
	}
}

func TestGetPlaceNotFound(t *testing.T) {
	s := NewStore(nil)
	_, err := s.GetPlace(context.Background(), "ghost")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPutAssignsID(t *testing.T) {
	s := NewStore(nil)
	s.PutPlace(model.Place{Name: "Casa Manila"})
	places, err := s.ListPlaces(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(places) != 1 || places[0].ID == "" {
		t.Errorf("places = %+v", places)
	}
}
