// Package reviews implements the local read-through cache for residency
// reviews, refreshed by full-snapshot replacement like the listing cache.
package reviews

import (
	"context"

	"github.com/unistay/unistay/internal/models"
)

// Repository describes the cached review operations.
type Repository interface {
	// Get returns a cached review by id, or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Review, error)

	// All returns every cached review.
	All(ctx context.Context) ([]models.Review, error)

	// ByOwner returns cached reviews written by ownerID.
	ByOwner(ctx context.Context, ownerID string) ([]models.Review, error)

	// Put upserts a single review.
	Put(ctx context.Context, rv *models.Review) error

	// PutAll upserts a batch in one transaction.
	PutAll(ctx context.Context, rvs []models.Review) error

	// Delete removes a cached review. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, id string) error

	// DeleteAllExcept removes every cached review whose id is not in keep
	// (tombstone-by-absence).
	DeleteAllExcept(ctx context.Context, keep []string) error

	// Clear empties the cache.
	Clear(ctx context.Context) error
}
