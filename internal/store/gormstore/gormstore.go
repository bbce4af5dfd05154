// Package gormstore persists place and event documents through GORM,
// keeping the nested document parts (opening hours, recurrence, custom
// address) in JSON columns.
package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/zneright/tourkita-core/internal/model"
)

// PlaceRecord is the database representation of a place document.
type PlaceRecord struct {
	ID                 string `gorm:"primarykey;size:64"`
	Name               string `gorm:"size:255"`
	Category           string `gorm:"size:64;index"`
	Latitude           float64
	Longitude          float64
	Address            string `gorm:"size:255"`
	OpeningHours       datatypes.JSON
	SupportsAR         bool
	AccessibleRestroom bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (PlaceRecord) TableName() string { return "places" }

// EventRecord is the database representation of an event document.
type EventRecord struct {
	ID            string `gorm:"primarykey;size:64"`
	Title         string `gorm:"size:255"`
	Description   string
	ImageURL      string `gorm:"size:512"`
	StartDate     time.Time
	EndDate       time.Time
	StartTime     string `gorm:"size:5"`
	EndTime       string `gorm:"size:5"`
	OpenToPublic  bool
	Lat           *float64
	Lng           *float64
	LocationID    string `gorm:"size:64;index"`
	CustomAddress datatypes.JSON
	Address       string `gorm:"size:255"`
	Recurrence    datatypes.JSON
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (EventRecord) TableName() string { return "events" }

// Store reads and writes documents through a GORM connection.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the schema and returns a store bound to db.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&PlaceRecord{}, &EventRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// ListEvents returns all event documents.
func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	var records []EventRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	out := make([]model.Event, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// ListPlaces returns all place documents.
func (s *Store) ListPlaces(ctx context.Context) ([]model.Place, error) {
	var records []PlaceRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("listing places: %w", err)
	}
	out := make([]model.Place, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.toDomain())
	}
	return out, nil
}

// GetPlace returns the place with the given ID.
func (s *Store) GetPlace(ctx context.Context, id string) (model.Place, error) {
	var rec PlaceRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Place{}, fmt.Errorf("place %q: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Place{}, fmt.Errorf("getting place %q: %w", id, err)
	}
	return rec.toDomain(), nil
}

// SavePlace upserts a place document.
func (s *Store) SavePlace(ctx context.Context, p model.Place) error {
	rec, err := placeRecord(p)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&rec).Error
}

// SaveEvent upserts an event document.
func (s *Store) SaveEvent(ctx context.Context, ev model.Event) error {
	rec, err := eventRecord(ev)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Save(&rec).Error
}

func placeRecord(p model.Place) (PlaceRecord, error) {
	rec := PlaceRecord{
		ID:                 p.ID,
		Name:               p.Name,
		Category:           p.Category,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Address:            p.Address,
		SupportsAR:         p.SupportsAR,
		AccessibleRestroom: p.AccessibleRestroom,
	}
	if p.OpeningHours != nil {
		named := make(map[string]model.DayHours, len(p.OpeningHours))
		for day, hours := range p.OpeningHours {
			named[strings.ToLower(day.String())] = hours
		}
		raw, err := json.Marshal(named)
		if err != nil {
			return PlaceRecord{}, fmt.Errorf("encoding opening hours: %w", err)
		}
		rec.OpeningHours = raw
	}
	return rec, nil
}

func (rec PlaceRecord) toDomain() model.Place {
	p := model.Place{
		ID:                 rec.ID,
		Name:               rec.Name,
		Category:           rec.Category,
		Latitude:           rec.Latitude,
		Longitude:          rec.Longitude,
		Address:            rec.Address,
		SupportsAR:         rec.SupportsAR,
		AccessibleRestroom: rec.AccessibleRestroom,
	}
	if len(rec.OpeningHours) > 0 {
		var named map[string]model.DayHours
		if err := json.Unmarshal(rec.OpeningHours, &named); err == nil {
			hours := make(map[time.Weekday]model.DayHours, len(named))
			for name, row := range named {
				if day, ok := model.ParseWeekday(name); ok {
					hours[day] = row
				}
			}
			p.OpeningHours = hours
		}
	}
	return p
}

func eventRecord(ev model.Event) (EventRecord, error) {
	rec := EventRecord{
		ID:           ev.ID,
		Title:        ev.Title,
		Description:  ev.Description,
		ImageURL:     ev.ImageURL,
		StartDate:    ev.StartDate,
		EndDate:      ev.EndDate,
		StartTime:    ev.StartTime,
		EndTime:      ev.EndTime,
		OpenToPublic: ev.OpenToPublic,
		Lat:          ev.Lat,
		Lng:          ev.Lng,
		LocationID:   ev.LocationID,
		Address:      ev.Address,
	}
	if ev.CustomAddress != nil {
		raw, err := json.Marshal(ev.CustomAddress)
		if err != nil {
			return EventRecord{}, fmt.Errorf("encoding custom address: %w", err)
		}
		rec.CustomAddress = raw
	}
	if ev.Recurrence != nil {
		raw, err := json.Marshal(ev.Recurrence)
		if err != nil {
			return EventRecord{}, fmt.Errorf("encoding recurrence: %w", err)
		}
		rec.Recurrence = raw
	}
	return rec, nil
}

func (rec EventRecord) toDomain() model.Event {
	ev := model.Event{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		ImageURL:     rec.ImageURL,
		StartDate:    rec.StartDate,
		EndDate:      rec.EndDate,
		StartTime:    rec.StartTime,
		EndTime:      rec.EndTime,
		OpenToPublic: rec.OpenToPublic,
		Lat:          rec.Lat,
		Lng:          rec.Lng,
		LocationID:   rec.LocationID,
		Address:      rec.Address,
	}
	if len(rec.CustomAddress) > 0 {
		var ca model.CustomAddress
		if err := json.Unmarshal(rec.CustomAddress, &ca); err == nil {
			ev.CustomAddress = &ca
		}
	}
	if len(rec.Recurrence) > 0 {
		var r model.Recurrence
		if err := json.Unmarshal(rec.Recurrence, &r); err == nil {
			ev.Recurrence = &r
		}
	}
	return ev
}
