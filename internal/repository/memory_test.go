package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyair/internal/models"
)

func hourDoc(t *testing.T, station, pollutant string, hour int, values ...float64) models.HourDocument {
	t.Helper()
	dates := make([]time.Time, len(values))
	for i := range values {
		dates[i] = time.Date(2024, 6, 1+i, hour, 0, 0, 0, time.UTC)
	}
	doc, err := models.NewHourDocument(models.DocumentID{Station: station, Pollutant: pollutant, Hour: hour}, values, dates)
	require.NoError(t, err)
	return doc
}

func testCatalog() CatalogData {
	return CatalogData{
		Regions:     map[string][]string{"BRETAGNE": {"FINISTERE", "MORBIHAN", "FINISTERE"}, "GUYANE": {"GUYANE"}},
		Departments: map[string][]string{"FINISTERE": {"BREST"}},
		Cities:      map[string][]Station{"BREST": {{Name: "BREST Mace", Latitude: 48.39, Longitude: -4.49}}},
		Pollutants:  map[string][]string{"BREST Mace": {"PM10", "NO2"}},
		LastUpdate:  "2024-06-30",
	}
}

func TestMemoryStoreFetchHistory(t *testing.T) {
	store := NewMemoryStore()
	store.Add(models.WorkingDay,
		hourDoc(t, "BREST Mace", "NO2", 0, 10, 12),
		hourDoc(t, "BREST Mace", "NO2", 1, 11),
		hourDoc(t, "BREST Mace", "PM10", 0, 30),
	)
	store.Add(models.Weekend, hourDoc(t, "BREST Mace", "NO2", 0, 8))

	docs, err := store.FetchHistory(context.Background(), "BREST Mace", "NO2", models.WorkingDay)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = store.FetchHistory(context.Background(), "BREST Mace", "NO2", models.Weekend)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	docs, err = store.FetchHistory(context.Background(), "QUIMPER", "NO2", models.WorkingDay)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreFetchHistoryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().FetchHistory(ctx, "A", "NO2", models.WorkingDay)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryStoreCatalog(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetCatalog(testCatalog())

	regions, err := store.Regions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BRETAGNE", "GUYANE"}, regions)

	departments, err := store.Departments(ctx, "BRETAGNE")
	require.NoError(t, err)
	assert.Equal(t, []string{"FINISTERE", "MORBIHAN"}, departments)

	cities, err := store.Cities(ctx, "FINISTERE")
	require.NoError(t, err)
	assert.Equal(t, []string{"BREST"}, cities)

	stations, err := store.Stations(ctx, "BREST")
	require.NoError(t, err)
	assert.Equal(t, []Station{{Name: "BREST Mace", Latitude: 48.39, Longitude: -4.49}}, stations)

	pollutants, err := store.Pollutants(ctx, "BREST Mace")
	require.NoError(t, err)
	assert.Equal(t, []string{"NO2", "PM10"}, pollutants)

	monitored, err := store.MonitoredStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BREST Mace"}, monitored)

	last, err := store.LastUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), last)
}

func TestMemoryStoreCatalogNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetCatalog(testCatalog())

	_, err := store.Departments(ctx, "NORMANDIE")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Cities(ctx, "MORBIHAN")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Stations(ctx, "QUIMPER")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Pollutants(ctx, "QUIMPER Zola")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewMemoryStore().LastUpdate(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
