package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailyair/internal/models"
)

func newHistoryServer(t *testing.T) *httptest.Server {
	t.Helper()
	snap := testSnapshot(t)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/history/working_days":
			if r.URL.Query().Get("station") != "BREST Mace" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(snap.WorkingDays)
		case "/history/weekends":
			w.Write([]byte(`[{"_id":{"station":"BREST Mace","pollutant":"NO2","hour":3},"history":{"values":[1,2],"dates":["2024-06-01"]}}]`))
		case "/catalog":
			json.NewEncoder(w).Encode(snap.Catalog)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
}

func testHTTPStore(url string) *HTTPStore {
	client := resty.New().SetAuthToken("secret")
	return NewHTTPStoreWithClient(client, url+"/")
}

func TestHTTPStoreFetchHistory(t *testing.T) {
	server := newHistoryServer(t)
	defer server.Close()

	docs, err := testHTTPStore(server.URL).FetchHistory(context.Background(), "BREST Mace", "NO2", models.WorkingDay)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, 7, docs[0].ID.Hour)
}

func TestHTTPStoreFetchHistoryNotFound(t *testing.T) {
	server := newHistoryServer(t)
	defer server.Close()

	docs, err := testHTTPStore(server.URL).FetchHistory(context.Background(), "QUIMPER", "NO2", models.WorkingDay)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHTTPStoreFetchHistoryIntegrity(t *testing.T) {
	server := newHistoryServer(t)
	defer server.Close()

	_, err := testHTTPStore(server.URL).FetchHistory(context.Background(), "BREST Mace", "NO2", models.Weekend)
	var integrity *models.DataIntegrityError
	assert.True(t, errors.As(err, &integrity))
}

func TestHTTPStoreFetchHistoryMalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"numeric dates", `[{"_id":{"station":"BREST Mace","pollutant":"NO2","hour":3},"history":{"values":[1,2],"dates":[1704067200,1704153600]}}]`},
		{"string value", `[{"_id":{"station":"BREST Mace","pollutant":"NO2","hour":3},"history":{"values":["1",2],"dates":["2024-06-01","2024-06-02"]}}]`},
		{"not a list", `{"error":"oops"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			store := NewHTTPStoreWithClient(resty.New(), server.URL)
			_, err := store.FetchHistory(context.Background(), "BREST Mace", "NO2", models.WorkingDay)

			var integrity *models.DataIntegrityError
			require.True(t, errors.As(err, &integrity), "got %v", err)
			assert.Equal(t, "BREST Mace", integrity.Station)
			assert.Equal(t, "NO2", integrity.Pollutant)
		})
	}
}

func TestHTTPStoreCachesCatalog(t *testing.T) {
	snap := testSnapshot(t)
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(snap.Catalog)
	}))
	defer server.Close()

	ctx := context.Background()
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	store := NewHTTPStoreWithClient(resty.New(), server.URL)
	store.now = func() time.Time { return now }

	_, err := store.LastUpdate(ctx)
	require.NoError(t, err)
	_, err = store.Stations(ctx, "BREST")
	require.NoError(t, err)
	_, err = store.MonitoredStations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	now = now.Add(defaultCatalogTTL)
	_, err = store.Regions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestHTTPStoreUnauthorized(t *testing.T) {
	server := newHistoryServer(t)
	defer server.Close()

	store := NewHTTPStoreWithClient(resty.New(), server.URL)
	_, err := store.FetchHistory(context.Background(), "BREST Mace", "NO2", models.WorkingDay)
	assert.Error(t, err)
	_, err = store.Regions(context.Background())
	assert.Error(t, err)
}

func TestHTTPStoreCatalog(t *testing.T) {
	server := newHistoryServer(t)
	defer server.Close()

	ctx := context.Background()
	store := testHTTPStore(server.URL)

	regions, err := store.Regions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"BRETAGNE", "GUYANE"}, regions)

	stations, err := store.Stations(ctx, "BREST")
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, 48.39, stations[0].Latitude)

	_, err = store.Cities(ctx, "MORBIHAN")
	assert.ErrorIs(t, err, ErrNotFound)

	last, err := store.LastUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", last.Format(models.DateLayout))
}
