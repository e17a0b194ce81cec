package server

import (
	"context"
	"path"
	"sort"

	"dailyair/internal/reports"
)

// reportsRoot is the storage folder published reports live under
const reportsRoot = "reports"

// FileManager publishes report files to the server's storage and lists them
type FileManager struct {
	server *Server
}

// NewFileManager creates a new file manager
func NewFileManager(server *Server) *FileManager {
	return &FileManager{server: server}
}

// Publish generates the files of a report page and stores them, returning
// the report folder and the stored paths
func (fm *FileManager) Publish(ctx context.Context, p reports.Page) (string, []string, error) {
	if fm.server.Storage == nil {
		return "", nil, errPublishingDisabled
	}
	files, err := reports.NewFileGenerator(fm.server.Generator).GenerateAllFiles(p)
	if err != nil {
		return "", nil, err
	}
	stored, err := reports.NewStorageOrchestrator(fm.server.Storage).StoreAllFiles(ctx, files)
	if err != nil {
		return "", nil, err
	}
	return files.FolderPath, stored, nil
}

// ListReports returns the folders of published reports, most recent cutoff first
func (fm *FileManager) ListReports(ctx context.Context) ([]string, error) {
	if fm.server.Storage == nil {
		return nil, errPublishingDisabled
	}
	paths, err := fm.server.Storage.ListDir(ctx, reportsRoot)
	if err != nil {
		return nil, err
	}
	var folders []string
	for _, p := range paths {
		if path.Base(p) == reports.HTMLFileName {
			folders = append(folders, path.Dir(p))
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))
	return folders, nil
}

// GetFile reads a published file
func (fm *FileManager) GetFile(ctx context.Context, p string) ([]byte, error) {
	if fm.server.Storage == nil {
		return nil, errPublishingDisabled
	}
	return fm.server.Storage.GetFile(ctx, path.Join(reportsRoot, p))
}
