// Package remote defines the contracts for the network-backed
// authoritative store and implements them on MongoDB. The remote side owns
// the full user directory and the server-computed relationship arrays;
// set-valued fields are mutated with server-side set union/difference, not
// read-modify-write, so concurrent mutators cannot lose updates.
package remote

import (
	"context"

	"github.com/unistay/unistay/internal/models"
)

// SetOp selects the direction of a set-field mutation.
type SetOp int

const (
	SetAdd SetOp = iota
	SetRemove
)

// ProfileStore is the remote transport for user profiles and their
// relationship arrays.
type ProfileStore interface {
	// Fetch returns the profile for id, common.ErrNotFound when the user
	// has no remote record, or common.ErrCorruptRemoteData when the
	// document does not decode.
	Fetch(ctx context.Context, id string) (*models.Profile, error)

	// Put creates or fully replaces the profile document for p.ID.
	Put(ctx context.Context, p *models.Profile) error

	// BlockedUserIDs returns the blocked-user array for any user.
	BlockedUserIDs(ctx context.Context, id string) ([]string, error)

	// BookmarkedListingIDs returns the bookmark array for any user.
	BookmarkedListingIDs(ctx context.Context, id string) ([]string, error)

	// MutateBlocked atomically adds or removes a user id in the
	// blocked-user array of profile id.
	MutateBlocked(ctx context.Context, id string, op SetOp, userID string) error

	// MutateBookmarks atomically adds or removes a listing id in the
	// bookmark array of profile id.
	MutateBookmarks(ctx context.Context, id string, op SetOp, listingID string) error
}

// NameResolver resolves a user id to a display name. Used only to enrich
// the local blocked-name cache; failures are non-fatal for callers.
type NameResolver interface {
	ResolveName(ctx context.Context, userID string) (string, error)
}

// ListingStore is the remote transport for rental listings.
type ListingStore interface {
	Fetch(ctx context.Context, id string) (*models.Listing, error)
	FetchAll(ctx context.Context) ([]models.Listing, error)
	Put(ctx context.Context, l *models.Listing) error
	Delete(ctx context.Context, id string) error
}

// ReviewStore is the remote transport for residency reviews.
type ReviewStore interface {
	Fetch(ctx context.Context, id string) (*models.Review, error)
	FetchAll(ctx context.Context) ([]models.Review, error)
	Put(ctx context.Context, rv *models.Review) error
	Delete(ctx context.Context, id string) error

	// CastVote atomically moves userID into the upvoter array (up=true)
	// or the downvoter array (up=false), removing it from the opposite
	// array in the same document write.
	CastVote(ctx context.Context, reviewID, userID string, up bool) error

	// ClearVote atomically removes userID from both vote arrays.
	ClearVote(ctx context.Context, reviewID, userID string) error
}
