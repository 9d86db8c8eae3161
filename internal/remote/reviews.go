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
	fieldUpvoters   = "upvoter_ids"
	fieldDownvoters = "downvoter_ids"
)

// MongoReviewStore implements ReviewStore on the reviews collection.
type MongoReviewStore struct {
	col *mongo.Collection
}

func NewMongoReviewStore(col *mongo.Collection) *MongoReviewStore {
	return &MongoReviewStore{col: col}
}

func (s *MongoReviewStore) Fetch(ctx context.Context, id string) (*models.Review, error) {
	var doc reviewDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding review %s: %v", common.ErrCorruptRemoteData, id, err)
	}
	return doc.toModel()
}

func (s *MongoReviewStore) FetchAll(ctx context.Context) ([]models.Review, error) {
	cur, err := s.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("fetching reviews: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.Review
	for cur.Next(ctx) {
		var doc reviewDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decoding review: %v", common.ErrCorruptRemoteData, err)
		}
		rv, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, *rv)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("fetching reviews: %w", err)
	}
	return result, nil
}

func (s *MongoReviewStore) Put(ctx context.Context, rv *models.Review) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": rv.ID}, reviewToDoc(rv), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: putting review %s: %v", common.ErrRemoteWriteFailed, rv.ID, err)
	}
	return nil
}

func (s *MongoReviewStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: deleting review %s: %v", common.ErrRemoteWriteFailed, id, err)
	}
	return nil
}

// CastVote moves userID into one vote array and out of the other in a
// single document update, so the disjoint-sets invariant holds even under
// concurrent votes from other devices.
func (s *MongoReviewStore) CastVote(ctx context.Context, reviewID, userID string, up bool) error {
	addField, pullField := fieldUpvoters, fieldDownvoters
	if !up {
		addField, pullField = fieldDownvoters, fieldUpvoters
	}
	update := bson.M{
		"$addToSet": bson.M{addField: userID},
		"$pull":     bson.M{pullField: userID},
	}
	res, err := s.col.UpdateByID(ctx, reviewID, update)
	if err != nil {
		return fmt.Errorf("%w: voting on review %s: %v", common.ErrRemoteWriteFailed, reviewID, err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ClearVote removes userID from both vote arrays.
func (s *MongoReviewStore) ClearVote(ctx context.Context, reviewID, userID string) error {
	update := bson.M{"$pull": bson.M{fieldUpvoters: userID, fieldDownvoters: userID}}
	res, err := s.col.UpdateByID(ctx, reviewID, update)
	if err != nil {
		return fmt.Errorf("%w: clearing vote on review %s: %v", common.ErrRemoteWriteFailed, reviewID, err)
	}
	if res.MatchedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}
