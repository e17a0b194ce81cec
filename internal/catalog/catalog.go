// Package catalog resolves the cascading location, station and pollutant
// choices offered to the user, and the period an analysis may cover.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"dailyair/internal/logger"
	"dailyair/internal/repository"
)

var (
	// ErrUnsupported is returned when the data backend keeps no catalog
	ErrUnsupported = errors.New("catalog not supported by the data backend")
	// ErrNotFound is returned when the parent of a query does not exist
	ErrNotFound = repository.ErrNotFound
	// ErrNoStationData is returned for a station without recorded pollutants
	ErrNoStationData = errors.New("no data available for this station")
)

// OverseasRegion groups the overseas departments, which are stored as regions
const OverseasRegion = "OUTRE-MER"

// OverseasDepartments are listed as departments of OverseasRegion
var OverseasDepartments = []string{
	"GUADELOUPE",
	"GUYANE",
	"MARTINIQUE",
	"LA REUNION",
	"MAYOTTE",
	"SAINT-MARTIN",
}

// Item is one choice of a catalog list
type Item struct {
	Value     string   `json:"value"`
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Available *bool    `json:"available,omitempty"`
}

// Options configures the analysis period
type Options struct {
	// PeriodDays is how far back from the last update data are kept
	PeriodDays int
	// LookbackDays places the default cutoff before the last update
	LookbackDays int
}

// Catalog answers catalog queries over a CatalogStore
type Catalog struct {
	store    repository.CatalogStore
	opts     Options
	dispatch map[QueryKind]func(ctx context.Context, parent string) ([]Item, error)
	log      *logger.Logger
}

// New creates a catalog. A nil store yields ErrUnsupported on every query.
func New(store repository.CatalogStore, opts Options) *Catalog {
	c := &Catalog{
		store: store,
		opts:  opts,
		log:   logger.Component("catalog"),
	}
	c.dispatch = map[QueryKind]func(ctx context.Context, parent string) ([]Item, error){
		Regions:     c.regions,
		Departments: c.departments,
		Cities:      c.cities,
		Stations:    c.stations,
		Pollutants:  c.pollutants,
	}
	return c
}

// Supported reports whether the backend keeps a catalog
func (c *Catalog) Supported() bool {
	return c.store != nil
}

// Query lists the choices of a kind below parent. Regions take no parent.
func (c *Catalog) Query(ctx context.Context, kind QueryKind, parent string) ([]Item, error) {
	if !c.Supported() {
		return nil, ErrUnsupported
	}
	fn, ok := c.dispatch[kind]
	if !ok {
		return nil, fmt.Errorf("unknown query kind %d", int(kind))
	}
	parent = strings.TrimSpace(parent)
	if kind != Regions && parent == "" {
		return nil, fmt.Errorf("%s query requires a parent", kind)
	}

	items, err := fn(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("%s of %q: %w", kind, parent, err)
	}
	c.log.Debug("Catalog query", logger.Fields{"kind": kind.String(), "parent": parent, "items": len(items)})
	return items, nil
}

func (c *Catalog) regions(ctx context.Context, _ string) ([]Item, error) {
	stored, err := c.store.Regions(ctx)
	if err != nil {
		return nil, err
	}
	overseas := make(map[string]bool, len(OverseasDepartments))
	for _, d := range OverseasDepartments {
		overseas[d] = true
	}

	names := make([]string, 0, len(stored)+1)
	for _, r := range stored {
		if !overseas[r] {
			names = append(names, r)
		}
	}
	sort.Strings(names)
	names = append(names, OverseasRegion)
	return plainItems(names), nil
}

func (c *Catalog) departments(ctx context.Context, region string) ([]Item, error) {
	if region == OverseasRegion {
		return plainItems(OverseasDepartments), nil
	}
	names, err := c.store.Departments(ctx, region)
	if err != nil {
		return nil, err
	}
	return plainItems(names), nil
}

func (c *Catalog) cities(ctx context.Context, department string) ([]Item, error) {
	names, err := c.store.Cities(ctx, department)
	if err != nil {
		return nil, err
	}
	return plainItems(names), nil
}

func (c *Catalog) stations(ctx context.Context, city string) ([]Item, error) {
	stations, err := c.store.Stations(ctx, city)
	if err != nil {
		return nil, err
	}
	monitored, err := c.monitored(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(stations))
	for i, s := range stations {
		lat, lon, available := s.Latitude, s.Longitude, monitored[s.Name]
		items[i] = Item{
			Value:     s.Name,
			Label:     s.Name,
			Latitude:  &lat,
			Longitude: &lon,
			Available: &available,
		}
	}
	return items, nil
}

func (c *Catalog) pollutants(ctx context.Context, station string) ([]Item, error) {
	if err := c.CheckStation(ctx, station); err != nil {
		return nil, err
	}
	codes, err := c.store.Pollutants(ctx, station)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(codes))
	for i, code := range codes {
		items[i] = Item{Value: code, Label: code + " pollution"}
	}
	return items, nil
}

// CheckStation returns ErrNoStationData when the station has no recorded pollutant
func (c *Catalog) CheckStation(ctx context.Context, station string) error {
	if !c.Supported() {
		return ErrUnsupported
	}
	monitored, err := c.monitored(ctx)
	if err != nil {
		return err
	}
	if !monitored[station] {
		return fmt.Errorf("station %s: %w", station, ErrNoStationData)
	}
	return nil
}

func (c *Catalog) monitored(ctx context.Context) (map[string]bool, error) {
	names, err := c.store.MonitoredStations(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set, nil
}

func plainItems(names []string) []Item {
	items := make([]Item, len(names))
	for i, n := range names {
		items[i] = Item{Value: n, Label: n}
	}
	return items
}
