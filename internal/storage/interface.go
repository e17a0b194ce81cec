package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned when a requested file is not in storage
var ErrNotExist = errors.New("file does not exist")

// StorageClient defines the blob operations the snapshot backend and the
// chart exports rely on
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file at the specified path
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListDir lists the files under a directory, sorted by path
	ListDir(ctx context.Context, dirPath string) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)
}
