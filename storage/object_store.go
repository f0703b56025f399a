// Package storage abstracts where receipt files live.
package storage

import "context"

// ObjectStore is a single backend for receipt blobs. Implementations return
// a location (URL or path) from Put that is stored alongside the receipt
// metadata.
type ObjectStore interface {
	Name() string
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
