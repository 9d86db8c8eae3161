package remote

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/unistay/unistay/internal/common"
	"github.com/unistay/unistay/internal/models"
)

const (
	fieldBlocked   = "blocked_user_ids"
	fieldBookmarks = "bookmarked_listing_ids"
)

// MongoProfileStore implements ProfileStore and NameResolver on the users
// collection.
type MongoProfileStore struct {
	col *mongo.Collection
}

func NewMongoProfileStore(col *mongo.Collection) *MongoProfileStore {
	return &MongoProfileStore{col: col}
}

func (s *MongoProfileStore) Fetch(ctx context.Context, id string) (*models.Profile, error) {
	var doc profileDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding profile %s: %v", common.ErrCorruptRemoteData, id, err)
	}
	return doc.toModel()
}

func (s *MongoProfileStore) Put(ctx context.Context, p *models.Profile) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, profileToDoc(p), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: putting profile %s: %v", common.ErrRemoteWriteFailed, p.ID, err)
	}
	return nil
}

func (s *MongoProfileStore) BlockedUserIDs(ctx context.Context, id string) ([]string, error) {
	return s.idArray(ctx, id, fieldBlocked)
}

func (s *MongoProfileStore) BookmarkedListingIDs(ctx context.Context, id string) ([]string, error) {
	return s.idArray(ctx, id, fieldBookmarks)
}

func (s *MongoProfileStore) idArray(ctx context.Context, id, field string) ([]string, error) {
	var doc struct {
		IDs []string `bson:"ids"`
	}
	opts := options.FindOne().SetProjection(bson.M{"ids": "$" + field, "_id": 0})
	err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s of %s: %v", common.ErrCorruptRemoteData, field, id, err)
	}
	return doc.IDs, nil
}

func (s *MongoProfileStore) MutateBlocked(ctx context.Context, id string, op SetOp, userID string) error {
	return s.mutateSetField(ctx, id, fieldBlocked, op, userID)
}

func (s *MongoProfileStore) MutateBookmarks(ctx context.Context, id string, op SetOp, listingID string) error {
	return s.mutateSetField(ctx, id, fieldBookmarks, op, listingID)
}

// mutateSetField issues a server-side set union or difference on one array
// field. $addToSet keeps the mutation idempotent, so replayed calls cannot
// duplicate a member.
func (s *MongoProfileStore) mutateSetField(ctx context.Context, id, field string, op SetOp, value string) error {
	var update bson.M
	switch op {
	case SetAdd:
		update = bson.M{"$addToSet": bson.M{field: value}}
	case SetRemove:
		update = bson.M{"$pull": bson.M{field: value}}
	default:
		return fmt.Errorf("unknown set op %d", op)
	}
	res, err := s.col.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("%w: mutating %s of %s: %v", common.ErrRemoteWriteFailed, field, id, err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ResolveName implements NameResolver from the user directory.
func (s *MongoProfileStore) ResolveName(ctx context.Context, userID string) (string, error) {
	var doc struct {
		Name string `bson:"name"`
	}
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "_id": 0})
	err := s.col.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", common.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolving name of %s: %w", userID, err)
	}
	return doc.Name, nil
}
