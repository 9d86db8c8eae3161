// Package listings implements the local read-through cache for rental
// listings. The remote store is authoritative; this cache is refreshed by
// full-snapshot replacement (PutAll followed by DeleteAllExcept).
package listings

import (
	"context"

	"github.com/unistay/unistay/internal/models"
)

// Repository describes the cached listing operations.
type Repository interface {
	// Get returns a cached listing by id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Listing, error)

	// All returns every cached listing.
	All(ctx context.Context) ([]models.Listing, error)

	// ByOwner returns cached listings hosted by ownerID.
	ByOwner(ctx context.Context, ownerID string) ([]models.Listing, error)

	// Put upserts a single listing.
	Put(ctx context.Context, l *models.Listing) error

	// PutAll upserts a batch in one transaction.
	PutAll(ctx context.Context, ls []models.Listing) error

	// Delete removes a cached listing. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// DeleteAllExcept removes every cached listing whose id is not in
	// keep. With an empty keep list the cache is emptied. This implements
	// tombstone-by-absence after a snapshot sync.
	DeleteAllExcept(ctx context.Context, keep []string) error

	// Clear empties the cache.
	Clear(ctx context.Context) error
}
