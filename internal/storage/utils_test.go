package storage

import (
	"testing"
	"time"
)

func TestSnapshotPath(t *testing.T) {
	tests := []struct {
		name     string
		day      time.Time
		expected string
	}{
		{
			name:     "standard date",
			day:      time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC),
			expected: "snapshots/2025/09/air-quality-2025-09-17.json",
		},
		{
			name:     "new year date",
			day:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: "snapshots/2025/01/air-quality-2025-01-01.json",
		},
		{
			name:     "leap year date",
			day:      time.Date(2024, 2, 29, 12, 15, 30, 0, time.UTC),
			expected: "snapshots/2024/02/air-quality-2024-02-29.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := SnapshotPath(tt.day); result != tt.expected {
				t.Errorf("SnapshotPath() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestLatestSnapshot(t *testing.T) {
	paths := []string{
		SnapshotPath(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)),
		SnapshotPath(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)),
		"snapshots/README.md",
	}

	latest, ok := LatestSnapshot(paths)
	if !ok {
		t.Fatal("Expected a snapshot to be found")
	}
	if latest != "snapshots/2025/03/air-quality-2025-03-02.json" {
		t.Errorf("LatestSnapshot() = %s", latest)
	}

	if _, ok := LatestSnapshot([]string{"notes.txt"}); ok {
		t.Error("Expected no snapshot in a listing without JSON files")
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"snapshot.json", "application/json"},
		{"chart.png", "image/png"},
		{"chart.HTML", "text/html"},
		{"pollutants.yaml", "application/yaml"},
		{"intro.md", "text/markdown"},
		{"notes.txt", "text/plain"},
		{"archive.tar.gz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if result := GetContentType(tt.filename); result != tt.expected {
				t.Errorf("GetContentType(%s) = %s, want %s", tt.filename, result, tt.expected)
			}
		})
	}
}
