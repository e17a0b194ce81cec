package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// SnapshotPath generates the path of the snapshot exported on a given day
// Format: snapshots/YYYY/MM/air-quality-YYYY-MM-DD.json
func SnapshotPath(day time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/air-quality-%04d-%02d-%02d.json",
		day.Year(), day.Month(),
		day.Year(), day.Month(), day.Day())
}

// LatestSnapshot returns the last JSON file of a listing. Snapshot names
// embed their date, so lexical order is chronological.
func LatestSnapshot(paths []string) (string, bool) {
	for i := len(paths) - 1; i >= 0; i-- {
		if strings.HasSuffix(paths[i], ".json") {
			return paths[i], true
		}
	}
	return "", false
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain"
	case ".html":
		return "text/html"
	case ".md":
		return "text/markdown"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".png":
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
