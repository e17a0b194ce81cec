package mocks

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"dailyair/internal/models"
	"dailyair/internal/pollutants"
	"dailyair/internal/repository"
)

// DefaultLastUpdate is the last update date of the synthetic dataset
var DefaultLastUpdate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

// historyDays is how many days of readings each synthetic document covers
const historyDays = 180

// MockService provides the dataset served in mockup mode
type MockService struct {
	mocksDir   string
	lastUpdate time.Time
	table      pollutants.Table
}

// NewMockService creates a mock service. When mocksDir holds a
// data/snapshot.json it is served instead of the synthetic dataset.
func NewMockService(mocksDir string) *MockService {
	dir := ""
	if mocksDir != "" {
		dir = filepath.Join(mocksDir, "data")
	}
	return &MockService{
		mocksDir:   dir,
		lastUpdate: DefaultLastUpdate,
		table:      pollutants.Default(),
	}
}

// LoadMockData returns the snapshot file of the mocks directory or, without
// one, the synthetic dataset
func (m *MockService) LoadMockData() (repository.Snapshot, error) {
	if m.mocksDir != "" {
		content, err := os.ReadFile(filepath.Join(m.mocksDir, "snapshot.json"))
		switch {
		case err == nil:
			var snap repository.Snapshot
			if err := json.Unmarshal(content, &snap); err != nil {
				return repository.Snapshot{}, fmt.Errorf("failed to unmarshal mock snapshot: %w", err)
			}
			return snap, nil
		case !os.IsNotExist(err):
			return repository.Snapshot{}, fmt.Errorf("failed to read mock snapshot: %w", err)
		}
	}
	return m.Synthetic(), nil
}

// Store loads the mock data into a memory store
func (m *MockService) Store() (*repository.MemoryStore, error) {
	snap, err := m.LoadMockData()
	if err != nil {
		return nil, err
	}
	return snap.Store()
}

// mockStation describes how the synthetic history of a station is generated
type mockStation struct {
	station repository.Station
	city    string
	// level scales the reference concentration of each pollutant
	level map[string]float64
	// weekendHours lists the hours with weekend data; nil means all
	weekendHours []int
	// noWeekend drops the weekend documents of these pollutants
	noWeekend map[string]bool
}

var mockStations = []mockStation{
	{
		station: repository.Station{Name: "PARIS 13eme", Latitude: 48.828, Longitude: 2.36},
		city:    "PARIS",
		level:   map[string]float64{"NO2": 0.9, "PM10": 0.5, "PM2.5": 0.8},
	},
	{
		station: repository.Station{Name: "PARIS 18eme", Latitude: 48.892, Longitude: 2.345},
		city:    "PARIS",
		level:   map[string]float64{"NO2": 2.2, "SO2": 0.2},
	},
	{
		station:   repository.Station{Name: "LYON Centre", Latitude: 45.758, Longitude: 4.854},
		city:      "LYON",
		level:     map[string]float64{"NO2": 1.1, "PM10": 0.6, "CO": 0.3},
		noWeekend: map[string]bool{"CO": true},
	},
	{
		station:      repository.Station{Name: "PAP Port", Latitude: 16.24, Longitude: -61.53},
		city:         "POINTE-A-PITRE",
		level:        map[string]float64{"SO2": 0.4, "PM10": 0.7},
		weekendHours: []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21},
	},
}

// Synthetic builds a deterministic dataset: a catalog with a mainland and
// an overseas region, and daily readings over the last 180 days
func (m *MockService) Synthetic() repository.Snapshot {
	catalog := repository.CatalogData{
		Regions: map[string][]string{
			"ILE-DE-FRANCE":        {"PARIS"},
			"AUVERGNE-RHONE-ALPES": {"RHONE"},
			"GUADELOUPE":           {"GUADELOUPE"},
		},
		Departments: map[string][]string{
			"PARIS":      {"PARIS"},
			"RHONE":      {"LYON"},
			"GUADELOUPE": {"POINTE-A-PITRE"},
		},
		Cities: map[string][]repository.Station{
			// LYON Gerland has no pollutant data
			"LYON": {{Name: "LYON Gerland", Latitude: 45.733, Longitude: 4.832}},
		},
		Pollutants: map[string][]string{},
		LastUpdate: m.lastUpdate.Format(models.DateLayout),
	}

	snap := repository.Snapshot{LastUpdate: catalog.LastUpdate}
	for _, ms := range mockStations {
		catalog.Cities[ms.city] = append(catalog.Cities[ms.city], ms.station)
		for _, code := range m.table.Codes() {
			level, ok := ms.level[code]
			if !ok {
				continue
			}
			catalog.Pollutants[ms.station.Name] = append(catalog.Pollutants[ms.station.Name], code)
			base := m.table[code].Reference * level

			for h := 0; h < models.HoursPerDay; h++ {
				id := models.DocumentID{Station: ms.station.Name, Pollutant: code, Hour: h}
				snap.WorkingDays = append(snap.WorkingDays, m.document(id, base, models.WorkingDay))
				if ms.noWeekend[code] || !hasHour(ms.weekendHours, h) {
					continue
				}
				snap.Weekends = append(snap.Weekends, m.document(id, base, models.Weekend))
			}
		}
	}
	snap.Catalog = catalog
	return snap
}

// document generates the readings of one hour over the history period
func (m *MockService) document(id models.DocumentID, base float64, group models.DayTypeGroup) models.RawDocument {
	doc := models.RawDocument{ID: id}
	first := m.lastUpdate.AddDate(0, 0, -historyDays)
	for day := 0; day <= historyDays; day++ {
		date := first.AddDate(0, 0, day)
		if DayTypeOf(date) != group {
			continue
		}
		v := base * diurnalProfile(id.Hour, group) * (1 + 0.15*math.Sin(float64(day)*0.7+float64(id.Hour)))
		doc.History.Values = append(doc.History.Values, math.Round(v*10)/10)
		doc.History.Dates = append(doc.History.Dates, date.Add(time.Duration(id.Hour)*time.Hour).Format(time.RFC3339))
	}
	return doc
}

// DayTypeOf returns the group a calendar day belongs to
func DayTypeOf(t time.Time) models.DayTypeGroup {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return models.Weekend
	default:
		return models.WorkingDay
	}
}

// diurnalProfile peaks with the morning and evening traffic; weekends are
// lower with a later morning peak
func diurnalProfile(hour int, group models.DayTypeGroup) float64 {
	h := float64(hour)
	if group == models.Weekend {
		return 0.7 * (0.6 + 0.3*math.Exp(-(h-11)*(h-11)/10) + 0.3*math.Exp(-(h-20)*(h-20)/8))
	}
	return 0.6 + 0.5*math.Exp(-(h-8)*(h-8)/6) + 0.4*math.Exp(-(h-19)*(h-19)/8)
}

func hasHour(hours []int, h int) bool {
	if hours == nil {
		return true
	}
	for _, x := range hours {
		if x == h {
			return true
		}
	}
	return false
}
