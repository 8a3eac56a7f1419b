package kvstore

import "context"

// Store is a persistent string-keyed document store. Values are opaque JSON
// blobs; the caller owns the schema of each document.
type Store interface {
	// Get retrieves the document stored under key. A missing key returns
	// (nil, nil); only genuine read failures return an error.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably stores value under key, replacing any previous document.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the document stored under key. Missing keys are a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}
