package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewLocalStorageClient(t *testing.T) {
	baseDir := filepath.Join(t.TempDir(), "nested", "data")

	client, err := NewLocalStorageClient(baseDir)
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}
	defer client.Close()

	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		t.Errorf("Expected base directory %s to be created", baseDir)
	}
}

func TestLocalStorageClient_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}

	data := []byte(`{"last_update":"2024-06-30"}`)
	if err := client.StoreFile(ctx, "snapshots/2024/06/air-quality-2024-06-30.json", data); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}

	got, err := client.GetFile(ctx, "snapshots/2024/06/air-quality-2024-06-30.json")
	if err != nil {
		t.Fatalf("GetFile failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetFile returned %q, want %q", got, data)
	}

	exists, err := client.FileExists(ctx, "snapshots/2024/06/air-quality-2024-06-30.json")
	if err != nil || !exists {
		t.Errorf("Expected file to exist, got exists=%v err=%v", exists, err)
	}
}

func TestLocalStorageClient_GetMissingFile(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create local storage client: %v", err)
	}

	_, err = client.GetFile(context.Background(), "missing.json")
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}

	exists, err := client.FileExists(context.Background(), "missing.json")
	if err != nil || exists {
		t.Errorf("Expected missing file, got exists=%v err=%v", exists, err)
	}
}

func TestLocalStorageClient_FileExistsOnDirectory(t *testing.T) {
	baseDir := t.TempDir()
	client, _ := NewLocalStorageClient(baseDir)
	os.MkdirAll(filepath.Join(baseDir, "snapshots"), 0755)

	exists, err := client.FileExists(context.Background(), "snapshots")
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if exists {
		t.Error("Expected a directory not to count as a file")
	}
}

func TestLocalStorageClient_ListDir(t *testing.T) {
	ctx := context.Background()
	client, _ := NewLocalStorageClient(t.TempDir())

	files := []string{
		"snapshots/2025/02/air-quality-2025-02-01.json",
		"snapshots/2024/12/air-quality-2024-12-31.json",
		"exports/chart.png",
	}
	for _, f := range files {
		if err := client.StoreFile(ctx, f, []byte("{}")); err != nil {
			t.Fatalf("StoreFile(%s) failed: %v", f, err)
		}
	}

	listed, err := client.ListDir(ctx, "snapshots")
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	expected := []string{
		"snapshots/2024/12/air-quality-2024-12-31.json",
		"snapshots/2025/02/air-quality-2025-02-01.json",
	}
	if !reflect.DeepEqual(listed, expected) {
		t.Errorf("ListDir() = %v, want %v", listed, expected)
	}

	empty, err := client.ListDir(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("ListDir on a missing directory failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty listing, got %v", empty)
	}
}

func TestLocalStorageClient_AbsolutePath(t *testing.T) {
	ctx := context.Background()
	client, _ := NewLocalStorageClient(t.TempDir())

	target := filepath.Join(t.TempDir(), "out", "chart.html")
	if err := client.StoreFile(ctx, target, []byte("<html></html>")); err != nil {
		t.Fatalf("StoreFile failed: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Errorf("Expected absolute path to be written as is: %v", err)
	}
}
