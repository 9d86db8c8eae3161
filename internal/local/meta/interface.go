// Package meta implements the key/value bookkeeping table of the local
// store. It holds the schema version and the per-family last-sync
// timestamps.
package meta

import "context"

// Repository describes the bookkeeping operations.
type Repository interface {
	// Get returns the value for key, or common.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set upserts a key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
