// Package profiles implements the local store for the current user's
// profile. The store holds at most one profile row at any time; Replace
// enforces that by clearing before inserting, so switching accounts can
// never leave two users' data side by side.
package profiles

import (
	"context"

	"github.com/unistay/unistay/internal/models"
)

// Repository describes the single-row profile cache plus the local-only
// blocked display-name cache.
type Repository interface {
	// Get returns the cached profile, or common.ErrNotFound when the
	// cache is empty.
	Get(ctx context.Context) (*models.Profile, error)

	// GetByID returns the cached profile only if it belongs to id.
	// A cached row for a different user is common.ErrNotFound: one user's
	// offline edits must never be served as another's.
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// Replace clears any existing row (and the blocked-name cache) and
	// inserts p, atomically.
	Replace(ctx context.Context, p *models.Profile) error

	// Clear removes the profile row and the blocked-name cache. Called on
	// logout and before caching a different user.
	Clear(ctx context.Context) error

	// BlockedName returns the cached display name for a blocked user, or
	// common.ErrNotFound.
	BlockedName(ctx context.Context, userID string) (string, error)

	// PutBlockedName upserts a cached display name.
	PutBlockedName(ctx context.Context, userID, name string) error
}
