package hybrid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/local/listings"
	"github.com/unistay/unistay/internal/local/meta"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
	"github.com/unistay/unistay/internal/reachability"
	"github.com/unistay/unistay/internal/remote"
)

// metaKeyLastSyncListings records when the listing cache last matched the
// remote collection, as RFC 3339.
const metaKeyLastSyncListings = "last_sync_listings"

// ListingCoordinator serves listings remote-wins: a full remote snapshot
// replaces the cache on every sync, and entries absent from the snapshot
// are pruned. Writes are online-only because listings are shared data the
// whole marketplace reads.
type ListingCoordinator struct {
	local  listings.Repository
	remote remote.ListingStore
	meta   meta.Repository
	net    reachability.Oracle
	log    logging.Logger
	now    func() time.Time
}

func NewListingCoordinator(
	local listings.Repository,
	rem remote.ListingStore,
	m meta.Repository,
	net reachability.Oracle,
	log logging.Logger,
) *ListingCoordinator {
	return &ListingCoordinator{local: local, remote: rem, meta: m, net: net, log: log, now: time.Now}
}

// Sync fetches the full remote collection and makes the cache identical
// to it: upsert everything fetched, delete everything else. Requires
// connectivity.
func (c *ListingCoordinator) Sync(ctx context.Context) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	snapshot, err := c.remote.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("listing sync: %w", err)
	}
	if err := c.local.PutAll(ctx, snapshot); err != nil {
		return err
	}
	keep := make([]string, 0, len(snapshot))
	for _, l := range snapshot {
		keep = append(keep, l.ID)
	}
	if err := c.local.DeleteAllExcept(ctx, keep); err != nil {
		return err
	}
	if err := c.meta.Set(ctx, metaKeyLastSyncListings, c.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	c.log.Debug(ctx, "listing cache synced", "count", len(snapshot))
	return nil
}

// All returns every cached listing, refreshing the cache first when
// online. A failed refresh degrades to the stale cache.
func (c *ListingCoordinator) All(ctx context.Context) ([]models.Listing, error) {
	c.refresh(ctx)
	return c.local.All(ctx)
}

// ByOwner returns the cached listings owned by ownerID, refreshing first
// when online.
func (c *ListingCoordinator) ByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	c.refresh(ctx)
	return c.local.ByOwner(ctx, ownerID)
}

// Get returns one listing, cache-first with a remote fallback on miss.
func (c *ListingCoordinator) Get(ctx context.Context, id string) (*models.Listing, error) {
	cached, err := c.local.Get(ctx, id)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if !c.net.Reachable(ctx) {
		return nil, common.ErrNotFound
	}
	fetched, err := c.remote.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.local.Put(ctx, fetched); err != nil {
		c.log.Warn(ctx, "could not cache fetched listing", "listing_id", id, "err", err)
	}
	return fetched, nil
}

// Create publishes a new listing. Online-only: the remote store is
// authoritative and the write must land there before anyone sees it.
func (c *ListingCoordinator) Create(ctx context.Context, l *models.Listing) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = c.now().UTC()
	}
	if err := c.remote.Put(ctx, l); err != nil {
		return err
	}
	return c.local.Put(ctx, l)
}

// Update replaces an existing listing, online-only.
func (c *ListingCoordinator) Update(ctx context.Context, l *models.Listing) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := c.remote.Put(ctx, l); err != nil {
		return err
	}
	return c.local.Put(ctx, l)
}

// Delete removes a listing remotely, then drops it from the cache.
func (c *ListingCoordinator) Delete(ctx context.Context, id string) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}
	return c.local.Delete(ctx, id)
}

// LastSync reports when the cache last matched the remote collection, or
// the zero time if it never has.
func (c *ListingCoordinator) LastSync(ctx context.Context) (time.Time, error) {
	raw, err := c.meta.Get(ctx, metaKeyLastSyncListings)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}

func (c *ListingCoordinator) refresh(ctx context.Context) {
	if !c.net.Reachable(ctx) {
		return
	}
	if err := c.Sync(ctx); err != nil {
		c.log.Warn(ctx, "listing refresh failed, serving cache", "err", err)
	}
}
