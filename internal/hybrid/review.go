package hybrid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/local/meta"
	"github.com/unistay/unistay/internal/local/reviews"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
	"github.com/unistay/unistay/internal/reachability"
	"github.com/unistay/unistay/internal/remote"
)

// metaKeyLastSyncReviews records when the review cache last matched the
// remote collection, as RFC 3339.
const metaKeyLastSyncReviews = "last_sync_reviews"

// ReviewCoordinator serves residency reviews with the same remote-wins,
// full-snapshot policy as listings. Votes additionally go through the
// remote store's atomic array mutations so two voters never clobber each
// other.
type ReviewCoordinator struct {
	local  reviews.Repository
	remote remote.ReviewStore
	meta   meta.Repository
	net    reachability.Oracle
	log    logging.Logger
	now    func() time.Time
}

func NewReviewCoordinator(
	local reviews.Repository,
	rem remote.ReviewStore,
	m meta.Repository,
	net reachability.Oracle,
	log logging.Logger,
) *ReviewCoordinator {
	return &ReviewCoordinator{local: local, remote: rem, meta: m, net: net, log: log, now: time.Now}
}

// Sync replaces the review cache with the full remote collection and
// prunes entries absent from it. Requires connectivity.
func (c *ReviewCoordinator) Sync(ctx context.Context) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	snapshot, err := c.remote.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("review sync: %w", err)
	}
	if err := c.local.PutAll(ctx, snapshot); err != nil {
		return err
	}
	keep := make([]string, 0, len(snapshot))
	for _, rv := range snapshot {
		keep = append(keep, rv.ID)
	}
	if err := c.local.DeleteAllExcept(ctx, keep); err != nil {
		return err
	}
	if err := c.meta.Set(ctx, metaKeyLastSyncReviews, c.now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	c.log.Debug(ctx, "review cache synced", "count", len(snapshot))
	return nil
}

// All returns every cached review, refreshing first when online.
func (c *ReviewCoordinator) All(ctx context.Context) ([]models.Review, error) {
	c.refresh(ctx)
	return c.local.All(ctx)
}

// ByOwner returns the cached reviews written by ownerID, refreshing first
// when online.
func (c *ReviewCoordinator) ByOwner(ctx context.Context, ownerID string) ([]models.Review, error) {
	c.refresh(ctx)
	return c.local.ByOwner(ctx, ownerID)
}

// Get returns one review, cache-first with a remote fallback on miss.
func (c *ReviewCoordinator) Get(ctx context.Context, id string) (*models.Review, error) {
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
		c.log.Warn(ctx, "could not cache fetched review", "review_id", id, "err", err)
	}
	return fetched, nil
}

// Create publishes a new review, online-only.
func (c *ReviewCoordinator) Create(ctx context.Context, rv *models.Review) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = c.now().UTC()
	}
	if err := rv.Validate(); err != nil {
		return err
	}
	if err := c.remote.Put(ctx, rv); err != nil {
		return err
	}
	return c.local.Put(ctx, rv)
}

// Update replaces an existing review, online-only.
func (c *ReviewCoordinator) Update(ctx context.Context, rv *models.Review) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := rv.Validate(); err != nil {
		return err
	}
	if err := c.remote.Put(ctx, rv); err != nil {
		return err
	}
	return c.local.Put(ctx, rv)
}

// Delete removes a review remotely, then drops it from the cache.
func (c *ReviewCoordinator) Delete(ctx context.Context, id string) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}
	return c.local.Delete(ctx, id)
}

// Vote records userID's up- or downvote on reviewID. The mutation runs
// server-side so concurrent votes merge instead of overwriting, then the
// cached copy is refreshed best-effort.
func (c *ReviewCoordinator) Vote(ctx context.Context, reviewID, userID string, up bool) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := c.remote.CastVote(ctx, reviewID, userID, up); err != nil {
		return err
	}
	c.recache(ctx, reviewID)
	return nil
}

// ClearVote withdraws userID's vote on reviewID.
func (c *ReviewCoordinator) ClearVote(ctx context.Context, reviewID, userID string) error {
	if !c.net.Reachable(ctx) {
		return common.ErrUnreachable
	}
	if err := c.remote.ClearVote(ctx, reviewID, userID); err != nil {
		return err
	}
	c.recache(ctx, reviewID)
	return nil
}

// LastSync reports when the cache last matched the remote collection, or
// the zero time if it never has.
func (c *ReviewCoordinator) LastSync(ctx context.Context) (time.Time, error) {
	raw, err := c.meta.Get(ctx, metaKeyLastSyncReviews)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}

func (c *ReviewCoordinator) refresh(ctx context.Context) {
	if !c.net.Reachable(ctx) {
		return
	}
	if err := c.Sync(ctx); err != nil {
		c.log.Warn(ctx, "review refresh failed, serving cache", "err", err)
	}
}

// recache re-fetches one review after a successful vote mutation so the
// cached copy reflects the new arrays without a full sync.
func (c *ReviewCoordinator) recache(ctx context.Context, reviewID string) {
	fresh, err := c.remote.Fetch(ctx, reviewID)
	if err != nil {
		c.log.Warn(ctx, "could not refresh voted review", "review_id", reviewID, "err", err)
		return
	}
	if err := c.local.Put(ctx, fresh); err != nil {
		c.log.Warn(ctx, "could not cache voted review", "review_id", reviewID, "err", err)
	}
}
