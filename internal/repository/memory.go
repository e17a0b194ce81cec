package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dailyair/internal/models"
)

// CatalogData is the serialized form of a location catalog
type CatalogData struct {
	// Regions maps a region to its departments
	Regions map[string][]string `json:"regions"`
	// Departments maps a department to its cities
	Departments map[string][]string `json:"departments"`
	// Cities maps a city to its stations
	Cities map[string][]Station `json:"cities"`
	// Pollutants maps a monitored station to the pollutants it records
	Pollutants map[string][]string `json:"pollutants"`
	// LastUpdate is the calendar date of the most recent reading
	LastUpdate string `json:"last_update"`
}

// MemoryStore serves hour documents and a catalog held in memory
type MemoryStore struct {
	mu      sync.RWMutex
	history map[models.DayTypeGroup][]models.HourDocument
	catalog CatalogData
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		history: make(map[models.DayTypeGroup][]models.HourDocument),
	}
}

// Add appends hour documents to a group
func (m *MemoryStore) Add(group models.DayTypeGroup, docs ...models.HourDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[group] = append(m.history[group], docs...)
}

// SetCatalog replaces the catalog
func (m *MemoryStore) SetCatalog(c CatalogData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalog = c
}

// FetchHistory returns the documents of the group matching station and pollutant
func (m *MemoryStore) FetchHistory(ctx context.Context, station, pollutant string, group models.DayTypeGroup) ([]models.HourDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var docs []models.HourDocument
	for _, d := range m.history[group] {
		if d.ID.Station == station && d.ID.Pollutant == pollutant {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

// Regions returns every region of the catalog
func (m *MemoryStore) Regions(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	regions := make([]string, 0, len(m.catalog.Regions))
	for r := range m.catalog.Regions {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions, nil
}

// Departments returns the departments of a region
func (m *MemoryStore) Departments(ctx context.Context, region string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lookupList(m.catalog.Regions, "region", region)
}

// Cities returns the cities of a department
func (m *MemoryStore) Cities(ctx context.Context, department string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lookupList(m.catalog.Departments, "department", department)
}

// Stations returns the stations of a city
func (m *MemoryStore) Stations(ctx context.Context, city string) ([]Station, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stations, ok := m.catalog.Cities[city]
	if !ok {
		return nil, fmt.Errorf("city %s: %w", city, ErrNotFound)
	}
	return append([]Station(nil), stations...), nil
}

// Pollutants returns the pollutants monitored at a station
func (m *MemoryStore) Pollutants(ctx context.Context, station string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lookupList(m.catalog.Pollutants, "station", station)
}

// MonitoredStations returns the stations that have pollutant data
func (m *MemoryStore) MonitoredStations(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stations := make([]string, 0, len(m.catalog.Pollutants))
	for s := range m.catalog.Pollutants {
		stations = append(stations, s)
	}
	sort.Strings(stations)
	return stations, nil
}

// LastUpdate returns the date of the most recent reading
func (m *MemoryStore) LastUpdate(ctx context.Context) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.catalog.LastUpdate == "" {
		return time.Time{}, fmt.Errorf("last update: %w", ErrNotFound)
	}
	t, err := models.ParseDate(m.catalog.LastUpdate)
	if err != nil {
		return time.Time{}, fmt.Errorf("last update: %w", err)
	}
	return t, nil
}

// lookupList returns the deduplicated, sorted list stored under key
func lookupList(m map[string][]string, kind, key string) ([]string, error) {
	items, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", kind, key, ErrNotFound)
	}
	return uniqueSorted(items), nil
}

func uniqueSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it]; dup {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
