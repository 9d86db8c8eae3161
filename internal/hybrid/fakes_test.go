package hybrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/local"
	"github.com/unistay/unistay/internal/logging"
	"github.com/unistay/unistay/internal/models"
	"github.com/unistay/unistay/internal/remote"
)

// openStore opens a migrated in-memory database for coordinator tests.
func openStore(t *testing.T) *local.Store {
	t.Helper()
	store, err := local.Open(context.Background(), ":memory:", logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// toggleNet is a reachability oracle tests can flip mid-scenario.
type toggleNet struct{ online bool }

func (n *toggleNet) Reachable(context.Context) bool { return n.online }

// fakeProfileStore is an in-memory stand-in for the remote profile
// collection, with per-operation failure switches.
type fakeProfileStore struct {
	docs  map[string]*models.Profile
	names map[string]string

	failFetch  bool
	failPut    bool
	failMutate bool

	puts      int
	mutations int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		docs:  make(map[string]*models.Profile),
		names: make(map[string]string),
	}
}

func (f *fakeProfileStore) Fetch(_ context.Context, id string) (*models.Profile, error) {
	if f.failFetch {
		return nil, common.ErrRemoteWriteFailed
	}
	p, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return p.Clone(), nil
}

func (f *fakeProfileStore) Put(_ context.Context, p *models.Profile) error {
	if f.failPut {
		return common.ErrRemoteWriteFailed
	}
	f.puts++
	f.docs[p.ID] = p.Clone()
	return nil
}

func (f *fakeProfileStore) BlockedUserIDs(_ context.Context, id string) ([]string, error) {
	if f.failFetch {
		return nil, common.ErrRemoteWriteFailed
	}
	p, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]string(nil), p.BlockedUserIDs...), nil
}

func (f *fakeProfileStore) BookmarkedListingIDs(_ context.Context, id string) ([]string, error) {
	if f.failFetch {
		return nil, common.ErrRemoteWriteFailed
	}
	p, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return append([]string(nil), p.BookmarkedListingIDs...), nil
}

func (f *fakeProfileStore) MutateBlocked(_ context.Context, id string, op remote.SetOp, userID string) error {
	return f.mutate(id, op, userID, true)
}

func (f *fakeProfileStore) MutateBookmarks(_ context.Context, id string, op remote.SetOp, listingID string) error {
	return f.mutate(id, op, listingID, false)
}

func (f *fakeProfileStore) mutate(id string, op remote.SetOp, member string, blocked bool) error {
	if f.failMutate {
		return common.ErrRemoteWriteFailed
	}
	p, ok := f.docs[id]
	if !ok {
		return common.ErrNotFound
	}
	f.mutations++
	if blocked {
		if op == remote.SetAdd {
			p.BlockUser(member)
		} else {
			p.UnblockUser(member)
		}
		return nil
	}
	if op == remote.SetAdd {
		p.AddBookmark(member)
	} else {
		p.RemoveBookmark(member)
	}
	return nil
}

func (f *fakeProfileStore) ResolveName(_ context.Context, userID string) (string, error) {
	name, ok := f.names[userID]
	if !ok {
		return "", common.ErrNotFound
	}
	return name, nil
}

// fakeListingStore is an in-memory stand-in for the remote listing
// collection.
type fakeListingStore struct {
	docs map[string]models.Listing

	failFetchAll bool
	failPut      bool
}

func newFakeListingStore() *fakeListingStore {
	return &fakeListingStore{docs: make(map[string]models.Listing)}
}

func (f *fakeListingStore) Fetch(_ context.Context, id string) (*models.Listing, error) {
	l, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &l, nil
}

func (f *fakeListingStore) FetchAll(context.Context) ([]models.Listing, error) {
	if f.failFetchAll {
		return nil, common.ErrRemoteWriteFailed
	}
	out := make([]models.Listing, 0, len(f.docs))
	for _, l := range f.docs {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeListingStore) Put(_ context.Context, l *models.Listing) error {
	if f.failPut {
		return common.ErrRemoteWriteFailed
	}
	f.docs[l.ID] = *l
	return nil
}

func (f *fakeListingStore) Delete(_ context.Context, id string) error {
	if f.failPut {
		return common.ErrRemoteWriteFailed
	}
	if _, ok := f.docs[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

// fakeReviewStore is an in-memory stand-in for the remote review
// collection, including server-side vote mutations.
type fakeReviewStore struct {
	docs map[string]models.Review

	failFetchAll bool
	failPut      bool
	failVote     bool
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{docs: make(map[string]models.Review)}
}

func (f *fakeReviewStore) Fetch(_ context.Context, id string) (*models.Review, error) {
	rv, ok := f.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &rv, nil
}

func (f *fakeReviewStore) FetchAll(context.Context) ([]models.Review, error) {
	if f.failFetchAll {
		return nil, common.ErrRemoteWriteFailed
	}
	out := make([]models.Review, 0, len(f.docs))
	for _, rv := range f.docs {
		out = append(out, rv)
	}
	return out, nil
}

func (f *fakeReviewStore) Put(_ context.Context, rv *models.Review) error {
	if f.failPut {
		return common.ErrRemoteWriteFailed
	}
	f.docs[rv.ID] = *rv
	return nil
}

func (f *fakeReviewStore) Delete(_ context.Context, id string) error {
	if f.failPut {
		return common.ErrRemoteWriteFailed
	}
	if _, ok := f.docs[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeReviewStore) CastVote(_ context.Context, reviewID, userID string, up bool) error {
	if f.failVote {
		return common.ErrRemoteWriteFailed
	}
	rv, ok := f.docs[reviewID]
	if !ok {
		return common.ErrNotFound
	}
	if up {
		rv.Upvote(userID)
	} else {
		rv.Downvote(userID)
	}
	f.docs[reviewID] = rv
	return nil
}

func (f *fakeReviewStore) ClearVote(_ context.Context, reviewID, userID string) error {
	if f.failVote {
		return common.ErrRemoteWriteFailed
	}
	rv, ok := f.docs[reviewID]
	if !ok {
		return common.ErrNotFound
	}
	rv.ClearVote(userID)
	f.docs[reviewID] = rv
	return nil
}
