package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no object exists under the key.
var ErrNotFound = errors.New("storage: not found")

// Storage abstracts a flat key/value blob store for JSON documents.
// The local filesystem implementation is the default; any durable store
// that can read, replace and remove a named object can stand in.
type Storage interface {
	// Read returns the full contents stored under key.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the object under key. Readers never observe a partially
	// written object.
	Write(ctx context.Context, key string, data []byte) error

	// Delete removes the object under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping reports whether the store is reachable and writable.
	Ping(ctx context.Context) error
}
