// Package repository reads hour documents and the location catalog from
// the configured document store.
package repository

import (
	"context"
	"errors"
	"time"

	"dailyair/internal/models"
	"dailyair/internal/pollutants"
)

// ErrNotFound is returned when a catalog entry does not exist
var ErrNotFound = errors.New("not found")

// HistoryStore returns the hour documents of one station, pollutant and day-type group
type HistoryStore interface {
	FetchHistory(ctx context.Context, station, pollutant string, group models.DayTypeGroup) ([]models.HourDocument, error)
}

// ReferenceSource provides the reference concentration of each pollutant
type ReferenceSource interface {
	FetchReferenceTable(ctx context.Context) (pollutants.Table, error)
}

// CatalogStore lists the locations, stations and pollutants a user can choose from.
// Lists are returned as stored; grouping of overseas departments is left to the caller.
type CatalogStore interface {
	Regions(ctx context.Context) ([]string, error)
	Departments(ctx context.Context, region string) ([]string, error)
	Cities(ctx context.Context, department string) ([]string, error)
	Stations(ctx context.Context, city string) ([]Station, error)
	Pollutants(ctx context.Context, station string) ([]string, error)
	MonitoredStations(ctx context.Context) ([]string, error)
	LastUpdate(ctx context.Context) (time.Time, error)
}

// Station is a monitoring station and its position
type Station struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Backend bundles the stores of one data backend. Catalog is nil when the
// backend only serves hour documents.
type Backend struct {
	Name    string
	History HistoryStore
	Catalog CatalogStore
	closer  func(ctx context.Context) error
}

// NewBackend bundles the stores of a backend with the function releasing them
func NewBackend(name string, history HistoryStore, catalog CatalogStore, closer func(ctx context.Context) error) *Backend {
	return &Backend{Name: name, History: history, Catalog: catalog, closer: closer}
}

// Close releases the backend's connections
func (b *Backend) Close(ctx context.Context) error {
	if b.closer == nil {
		return nil
	}
	return b.closer(ctx)
}
