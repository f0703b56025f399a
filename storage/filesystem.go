package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var _ ObjectStore = (*FilesystemStore)(nil)

// FilesystemStore is the local-disk fallback used when no object storage
// provider is reachable.
type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(dir string) (*FilesystemStore, error) {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	return &FilesystemStore{dir: dir}, nil
}

func (f *FilesystemStore) Name() string { return "filesystem" }

func (f *FilesystemStore) path(key string) string {
	// Keys may carry path separators (user prefixes); flatten anything that
	// would escape the storage dir.
	clean := strings.ReplaceAll(filepath.Clean("/"+key), "..", "")
	return filepath.Join(f.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

func (f *FilesystemStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {

	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create dir for %s: %w", key, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}

	return path, nil
}

func (f *FilesystemStore) Get(ctx context.Context, key string) ([]byte, error) {

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

func (f *FilesystemStore) Delete(ctx context.Context, key string) error {

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	return nil
}
