package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyair/internal/repository"
)

func testCatalog() *Catalog {
	store := repository.NewMemoryStore()
	store.SetCatalog(repository.CatalogData{
		Regions: map[string][]string{
			"BRETAGNE":   {"FINISTERE"},
			"OCCITANIE":  {"HAUTE-GARONNE"},
			"GUADELOUPE": {"GUADELOUPE"},
			"MAYOTTE":    {"MAYOTTE"},
		},
		Departments: map[string][]string{
			"FINISTERE":  {"BREST", "QUIMPER"},
			"GUADELOUPE": {"BASSE-TERRE"},
		},
		Cities: map[string][]repository.Station{
			"BREST": {
				{Name: "BREST Mace", Latitude: 48.39, Longitude: -4.49},
				{Name: "BREST Port", Latitude: 48.38, Longitude: -4.48},
			},
		},
		Pollutants: map[string][]string{"BREST Mace": {"NO2", "PM10"}},
		LastUpdate: "2024-06-30",
	})
	return New(store, Options{PeriodDays: 180, LookbackDays: 90})
}

func values(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out
}

func TestRegionsGroupOverseasDepartments(t *testing.T) {
	items, err := testCatalog().Query(context.Background(), Regions, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"BRETAGNE", "OCCITANIE", OverseasRegion}, values(items))
}

func TestOverseasDepartments(t *testing.T) {
	items, err := testCatalog().Query(context.Background(), Departments, OverseasRegion)
	require.NoError(t, err)
	assert.Equal(t, OverseasDepartments, values(items))
}

func TestCascade(t *testing.T) {
	ctx := context.Background()
	c := testCatalog()

	departments, err := c.Query(ctx, Departments, "BRETAGNE")
	require.NoError(t, err)
	assert.Equal(t, []string{"FINISTERE"}, values(departments))

	cities, err := c.Query(ctx, Cities, "FINISTERE")
	require.NoError(t, err)
	assert.Equal(t, []string{"BREST", "QUIMPER"}, values(cities))

	cities, err = c.Query(ctx, Cities, "GUADELOUPE")
	require.NoError(t, err)
	assert.Equal(t, []string{"BASSE-TERRE"}, values(cities))

	stations, err := c.Query(ctx, Stations, "BREST")
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, 48.39, *stations[0].Latitude)
	assert.True(t, *stations[0].Available)
	assert.False(t, *stations[1].Available)

	pollutants, err := c.Query(ctx, Pollutants, "BREST Mace")
	require.NoError(t, err)
	assert.Equal(t, []string{"NO2", "PM10"}, values(pollutants))
	assert.Equal(t, "NO2 pollution", pollutants[0].Label)
}

func TestStationWithoutData(t *testing.T) {
	c := testCatalog()

	_, err := c.Query(context.Background(), Pollutants, "BREST Port")
	assert.ErrorIs(t, err, ErrNoStationData)
	assert.ErrorIs(t, c.CheckStation(context.Background(), "BREST Port"), ErrNoStationData)
	assert.NoError(t, c.CheckStation(context.Background(), "BREST Mace"))
}

func TestQueryErrors(t *testing.T) {
	ctx := context.Background()
	c := testCatalog()

	_, err := c.Query(ctx, Cities, "MORBIHAN")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Query(ctx, Stations, " ")
	assert.Error(t, err)

	_, err = c.Query(ctx, QueryKind(42), "x")
	assert.Error(t, err)
}

func TestUnsupportedBackend(t *testing.T) {
	c := New(nil, Options{PeriodDays: 180, LookbackDays: 90})
	assert.False(t, c.Supported())

	_, err := c.Query(context.Background(), Regions, "")
	assert.True(t, errors.Is(err, ErrUnsupported))
	_, err = c.Period(context.Background())
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestParseQueryKind(t *testing.T) {
	for _, k := range QueryKinds {
		parsed, err := ParseQueryKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	parsed, err := ParseQueryKind(" Stations ")
	require.NoError(t, err)
	assert.Equal(t, Stations, parsed)

	_, err = ParseQueryKind("countries")
	assert.Error(t, err)
}

func TestPeriod(t *testing.T) {
	p, err := testCatalog().Period(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), p.Last)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), p.First)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), p.DefaultCutoff)
}

func TestPeriodValidate(t *testing.T) {
	p := NewPeriod(time.Date(2024, 6, 30, 17, 45, 0, 0, time.UTC), 180, 90)

	assert.NoError(t, p.Validate(p.First))
	assert.NoError(t, p.Validate(time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)))
	assert.ErrorIs(t, p.Validate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), ErrCutoffOutOfRange)
	assert.ErrorIs(t, p.Validate(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)), ErrCutoffOutOfRange)
}
