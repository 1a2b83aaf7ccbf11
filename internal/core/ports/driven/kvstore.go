package driven

import "context"

// KeyValueStore persists named blobs.
// Each key holds one serialised collection; writes replace the whole value.
type KeyValueStore interface {
	// Get returns the value stored under key, or nil with no error when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases resources.
	Close() error
}
