package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"dailyair/internal/models"
)

// HTTPStore reads hour documents and the catalog from a JSON document service:
//
//	GET {base}/history/{group}?station=..&pollutant=..  -> [RawDocument]
//	GET {base}/catalog                                  -> CatalogData
//
// The catalog is cached for catalogTTL so that one page request does not
// download it once per lookup.
type HTTPStore struct {
	client  *resty.Client
	baseURL string

	mu         sync.Mutex
	catalog    *MemoryStore
	fetchedAt  time.Time
	catalogTTL time.Duration
	now        func() time.Time
}

const defaultCatalogTTL = time.Minute

// NewHTTPStore creates a store for the service at baseURL. token, when set,
// is sent as a bearer token.
func NewHTTPStore(baseURL, token string) *HTTPStore {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(2 * time.Second)
	client.SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return NewHTTPStoreWithClient(client, baseURL)
}

// NewHTTPStoreWithClient creates a store using the given resty client
func NewHTTPStoreWithClient(client *resty.Client, baseURL string) *HTTPStore {
	return &HTTPStore{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		catalogTTL: defaultCatalogTTL,
		now:        time.Now,
	}
}

// FetchHistory fetches the documents of one group. A 404 means no documents.
func (h *HTTPStore) FetchHistory(ctx context.Context, station, pollutant string, group models.DayTypeGroup) ([]models.HourDocument, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"station":   station,
			"pollutant": pollutant,
		}).
		Get(h.baseURL + "/history/" + group.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s history: %w", group, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("history service returned status %d for %s", resp.StatusCode(), group)
	}

	var raw []models.RawDocument
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		id := models.DocumentID{Station: station, Pollutant: pollutant}
		return nil, models.NewDataIntegrityError(id, fmt.Sprintf("malformed %s history: %v", group, err))
	}
	return models.DecodeAll(raw)
}

// fetchCatalog returns the cached catalog, downloading it again once it is
// older than catalogTTL
func (h *HTTPStore) fetchCatalog(ctx context.Context) (*MemoryStore, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.catalog != nil && h.now().Sub(h.fetchedAt) < h.catalogTTL {
		return h.catalog, nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		Get(h.baseURL + "/catalog")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
	}

	var data CatalogData
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	store := NewMemoryStore()
	store.SetCatalog(data)
	h.catalog = store
	h.fetchedAt = h.now()
	return store, nil
}

// Regions lists the regions of the remote catalog
func (h *HTTPStore) Regions(ctx context.Context) ([]string, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Regions(ctx)
}

// Departments lists the departments of a region
func (h *HTTPStore) Departments(ctx context.Context, region string) ([]string, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Departments(ctx, region)
}

// Cities lists the cities of a department
func (h *HTTPStore) Cities(ctx context.Context, department string) ([]string, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Cities(ctx, department)
}

// Stations lists the stations of a city
func (h *HTTPStore) Stations(ctx context.Context, city string) ([]Station, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Stations(ctx, city)
}

// Pollutants lists the pollutants monitored at a station
func (h *HTTPStore) Pollutants(ctx context.Context, station string) ([]string, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.Pollutants(ctx, station)
}

// MonitoredStations lists the stations that have pollutant data
func (h *HTTPStore) MonitoredStations(ctx context.Context) ([]string, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return c.MonitoredStations(ctx)
}

// LastUpdate returns the date of the most recent reading
func (h *HTTPStore) LastUpdate(ctx context.Context) (time.Time, error) {
	c, err := h.fetchCatalog(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return c.LastUpdate(ctx)
}
