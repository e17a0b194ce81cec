package reports

import (
	"context"
	"fmt"
	"path"
	"sort"

	"dailyair/internal/logger"
	"dailyair/internal/storage"
)

// StorageOrchestrator publishes generated report files through a storage client
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: client,
		log:     logger.Component("reports.storage"),
	}
}

// StoreAllFiles stores every generated file under the report folder and
// returns the stored paths in name order
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) ([]string, error) {
	names := make([]string, 0, len(files.Files))
	for name := range files.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	stored := make([]string, 0, len(names))
	for _, name := range names {
		p := path.Join(files.FolderPath, name)
		if err := so.storage.StoreFile(ctx, p, files.Files[name]); err != nil {
			return stored, fmt.Errorf("failed to store %s: %w", name, err)
		}
		stored = append(stored, p)
	}

	so.log.Info("Report files stored", logger.Fields{"folder": files.FolderPath, "files": len(stored)})
	return stored, nil
}
