package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dailyair/internal/logger"
	"dailyair/internal/models"
	"dailyair/internal/storage"
)

// Snapshot is an exported copy of the whole database: catalog plus the hour
// documents of both day-type groups
type Snapshot struct {
	LastUpdate  string               `json:"last_update"`
	Catalog     CatalogData          `json:"catalog"`
	WorkingDays []models.RawDocument `json:"working_days"`
	Weekends    []models.RawDocument `json:"weekends"`
}

// LoadSnapshot reads a snapshot through a storage client and serves it from
// memory. A path ending in "/" selects the latest snapshot below that directory.
func LoadSnapshot(ctx context.Context, client storage.StorageClient, path string) (*MemoryStore, error) {
	log := logger.Component("repository.snapshot")

	if strings.HasSuffix(path, "/") {
		paths, err := client.ListDir(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		latest, ok := storage.LatestSnapshot(paths)
		if !ok {
			return nil, fmt.Errorf("no snapshot under %s: %w", path, storage.ErrNotExist)
		}
		path = latest
	}

	data, err := client.GetFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	store, err := snap.Store()
	if err != nil {
		return nil, err
	}

	log.Info("Snapshot loaded", logger.Fields{
		"path":         path,
		"last_update":  snap.LastUpdate,
		"working_days": len(snap.WorkingDays),
		"weekends":     len(snap.Weekends),
	})
	return store, nil
}

// Store decodes the snapshot documents into a memory store
func (s Snapshot) Store() (*MemoryStore, error) {
	working, err := models.DecodeAll(s.WorkingDays)
	if err != nil {
		return nil, err
	}
	weekends, err := models.DecodeAll(s.Weekends)
	if err != nil {
		return nil, err
	}

	catalog := s.Catalog
	if catalog.LastUpdate == "" {
		catalog.LastUpdate = s.LastUpdate
	}

	store := NewMemoryStore()
	store.Add(models.WorkingDay, working...)
	store.Add(models.Weekend, weekends...)
	store.SetCatalog(catalog)
	return store, nil
}

// SaveSnapshot writes a snapshot through a storage client
func SaveSnapshot(ctx context.Context, client storage.StorageClient, path string, snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := client.StoreFile(ctx, path, data); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}
