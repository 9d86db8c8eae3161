// Package hybrid implements the per-entity-family coordinators that
// reconcile the local store and the remote store.
//
// Profiles follow a local-wins policy: the device only ever caches the
// current user's profile, so any conflict is between that user's own
// unsynced edits and their own last-synced server state. Listings and
// reviews follow a remote-wins policy: the remote collection is fetched
// whole and replaces the cache, with tombstone-by-absence pruning.
package hybrid

import (
	"context"
	"errors"
	"fmt"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/identity"
	"github.com/unistay/unistay/internal/local/profiles"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
	"github.com/unistay/unistay/internal/reachability"
	"github.com/unistay/unistay/internal/remote"
)

// ProfileCoordinator orchestrates profile reads and writes across both
// stores. Local writes always happen; remote pushes are best-effort and
// never block the caller.
type ProfileCoordinator struct {
	local    profiles.Repository
	remote   remote.ProfileStore
	names    remote.NameResolver
	identity identity.Provider
	net      reachability.Oracle
	log      logging.Logger
}

func NewProfileCoordinator(
	local profiles.Repository,
	rem remote.ProfileStore,
	names remote.NameResolver,
	id identity.Provider,
	net reachability.Oracle,
	log logging.Logger,
) *ProfileCoordinator {
	return &ProfileCoordinator{local: local, remote: rem, names: names, identity: id, net: net, log: log}
}

// Create writes the profile locally first, unconditionally, then attempts
// a best-effort remote push. A failed push is logged and swallowed; the
// next successful Get re-pushes.
func (c *ProfileCoordinator) Create(ctx context.Context, p *models.Profile) error {
	if err := c.local.Replace(ctx, p); err != nil {
		return err
	}
	c.pushIfReachable(ctx, p)
	return nil
}

// Edit follows the same local-wins pattern as Create.
func (c *ProfileCoordinator) Edit(ctx context.Context, p *models.Profile) error {
	return c.Create(ctx, p)
}

// Get returns the profile for ownerID.
//
// For the current user, a reachable Get first pushes the locally cached
// profile so offline edits win on reconnect, then serves the local value.
// For any other user the local cache is never pushed and never serves:
// their profile is read from the remote directory only. A local cache
// miss for the current user falls back to a remote read and seeds the
// cache.
func (c *ProfileCoordinator) Get(ctx context.Context, ownerID string) (*models.Profile, error) {
	isCurrent := c.isCurrentUser(ctx, ownerID)

	if isCurrent && c.net.Reachable(ctx) {
		if cached, err := c.local.GetByID(ctx, ownerID); err == nil {
			c.push(ctx, cached)
		} else if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	if isCurrent {
		cached, err := c.local.GetByID(ctx, ownerID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	// cache miss, or somebody else's profile: remote is the only source
	if !c.net.Reachable(ctx) {
		return nil, common.ErrNotFound
	}
	fetched, err := c.remote.Fetch(ctx, ownerID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if isCurrent {
		if err := c.local.Replace(ctx, fetched); err != nil {
			return nil, err
		}
	}
	return fetched, nil
}

// Logout drops the cached profile and the blocked-name cache.
func (c *ProfileCoordinator) Logout(ctx context.Context) error {
	return c.local.Clear(ctx)
}

// BookmarkedListingIDs returns ownerID's bookmarks. The current user is
// served offline-first from the cached profile; other users are served
// remote-only and fail open to an empty list.
func (c *ProfileCoordinator) BookmarkedListingIDs(ctx context.Context, ownerID string) ([]string, error) {
	if c.isCurrentUser(ctx, ownerID) {
		p, err := c.Get(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return p.BookmarkedListingIDs, nil
	}
	return c.otherUserList(ctx, ownerID, c.remote.BookmarkedListingIDs)
}

// BlockedUserIDs mirrors BookmarkedListingIDs for the blocked set.
func (c *ProfileCoordinator) BlockedUserIDs(ctx context.Context, ownerID string) ([]string, error) {
	if c.isCurrentUser(ctx, ownerID) {
		p, err := c.Get(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		return p.BlockedUserIDs, nil
	}
	return c.otherUserList(ctx, ownerID, c.remote.BlockedUserIDs)
}

// AddBookmark adds listingID to ownerID's bookmarks, local-first with a
// best-effort atomic remote set-union.
func (c *ProfileCoordinator) AddBookmark(ctx context.Context, ownerID, listingID string) error {
	p, err := c.ensureLocalProfile(ctx, ownerID)
	if err != nil {
		return err
	}
	if p.AddBookmark(listingID) {
		if err := c.local.Replace(ctx, p); err != nil {
			return err
		}
	}
	c.mutateIfReachable(ctx, ownerID, "bookmark add", func() error {
		return c.remote.MutateBookmarks(ctx, ownerID, remote.SetAdd, listingID)
	})
	return nil
}

// RemoveBookmark removes listingID from ownerID's bookmarks.
func (c *ProfileCoordinator) RemoveBookmark(ctx context.Context, ownerID, listingID string) error {
	p, err := c.ensureLocalProfile(ctx, ownerID)
	if err != nil {
		return err
	}
	if p.RemoveBookmark(listingID) {
		if err := c.local.Replace(ctx, p); err != nil {
			return err
		}
	}
	c.mutateIfReachable(ctx, ownerID, "bookmark remove", func() error {
		return c.remote.MutateBookmarks(ctx, ownerID, remote.SetRemove, listingID)
	})
	return nil
}

// AddBlockedUser blocks targetID on behalf of ownerID. The target's
// display name is opportunistically resolved and cached so the block list
// renders offline; a failed resolution just omits the cached name.
func (c *ProfileCoordinator) AddBlockedUser(ctx context.Context, ownerID, targetID string) error {
	p, err := c.ensureLocalProfile(ctx, ownerID)
	if err != nil {
		return err
	}

	if p.BlockUser(targetID) {
		if c.net.Reachable(ctx) {
			if name, err := c.names.ResolveName(ctx, targetID); err == nil && name != "" {
				if p.BlockedNames == nil {
					p.BlockedNames = make(map[string]string)
				}
				p.BlockedNames[targetID] = name
			} else if err != nil {
				c.log.Warn(ctx, "could not resolve blocked user's name", "target_id", targetID, "err", err)
			}
		}
		if err := c.local.Replace(ctx, p); err != nil {
			return err
		}
	}

	c.mutateIfReachable(ctx, ownerID, "block add", func() error {
		return c.remote.MutateBlocked(ctx, ownerID, remote.SetAdd, targetID)
	})
	return nil
}

// RemoveBlockedUser unblocks targetID and drops the cached display name.
func (c *ProfileCoordinator) RemoveBlockedUser(ctx context.Context, ownerID, targetID string) error {
	p, err := c.ensureLocalProfile(ctx, ownerID)
	if err != nil {
		return err
	}
	if p.UnblockUser(targetID) {
		if err := c.local.Replace(ctx, p); err != nil {
			return err
		}
	}
	c.mutateIfReachable(ctx, ownerID, "block remove", func() error {
		return c.remote.MutateBlocked(ctx, ownerID, remote.SetRemove, targetID)
	})
	return nil
}

// BlockedName returns the locally cached display name for a blocked user.
func (c *ProfileCoordinator) BlockedName(ctx context.Context, userID string) (string, error) {
	return c.local.BlockedName(ctx, userID)
}

// ensureLocalProfile guarantees a cached row exists for ownerID before a
// list-field mutation, fetching it from the remote store when missing and
// online. Mutations require a signed-in session matching ownerID; anything
// else is caller misuse.
func (c *ProfileCoordinator) ensureLocalProfile(ctx context.Context, ownerID string) (*models.Profile, error) {
	current, ok := c.identity.CurrentUserID(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: not signed in, cannot act as %s", common.ErrCrossUserViolation, ownerID)
	}
	if current != ownerID {
		return nil, fmt.Errorf("%w: acting user %s, signed in as %s", common.ErrCrossUserViolation, ownerID, current)
	}

	p, err := c.local.GetByID(ctx, ownerID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	if !c.net.Reachable(ctx) {
		return nil, fmt.Errorf("no cached profile for %s: %w", ownerID, common.ErrUnreachable)
	}
	fetched, err := c.remote.Fetch(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := c.local.Replace(ctx, fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// otherUserList serves a non-critical read of someone else's public list.
// Offline or failing remote reads fail open to an empty list.
func (c *ProfileCoordinator) otherUserList(ctx context.Context, ownerID string, fetch func(context.Context, string) ([]string, error)) ([]string, error) {
	if !c.net.Reachable(ctx) {
		return []string{}, nil
	}
	ids, err := fetch(ctx, ownerID)
	if err != nil {
		c.log.Warn(ctx, "other-user list read failed", "owner_id", ownerID, "err", err)
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (c *ProfileCoordinator) isCurrentUser(ctx context.Context, ownerID string) bool {
	current, ok := c.identity.CurrentUserID(ctx)
	return ok && current == ownerID
}

// pushIfReachable pushes p remotely when online. Failures are logged and
// swallowed: offline-first usage must never block on network success.
func (c *ProfileCoordinator) pushIfReachable(ctx context.Context, p *models.Profile) {
	if !c.net.Reachable(ctx) {
		return
	}
	c.push(ctx, p)
}

func (c *ProfileCoordinator) push(ctx context.Context, p *models.Profile) {
	if err := c.remote.Put(ctx, p); err != nil {
		c.log.Warn(ctx, "profile push failed", "owner_id", p.ID, "err", err)
	}
}

// mutateIfReachable runs a best-effort remote set mutation.
func (c *ProfileCoordinator) mutateIfReachable(ctx context.Context, ownerID, what string, fn func() error) {
	if !c.net.Reachable(ctx) {
		return
	}
	if err := fn(); err != nil {
		c.log.Warn(ctx, "remote "+what+" failed", "owner_id", ownerID, "err", err)
	}
}
