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

// MongoListingStore implements ListingStore on the listings collection.
type MongoListingStore struct {
	col *mongo.Collection
}

func NewMongoListingStore(col *mongo.Collection) *MongoListingStore {
	return &MongoListingStore{col: col}
}

func (s *MongoListingStore) Fetch(ctx context.Context, id string) (*models.Listing, error) {
	var doc listingDoc
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding listing %s: %v", common.ErrCorruptRemoteData, id, err)
	}
	return doc.toModel()
}

func (s *MongoListingStore) FetchAll(ctx context.Context) ([]models.Listing, error) {
	cur, err := s.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.Listing
	for cur.Next(ctx) {
		var doc listingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decoding listing: %v", common.ErrCorruptRemoteData, err)
		}
		l, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}
	return result, nil
}

func (s *MongoListingStore) Put(ctx context.Context, l *models.Listing) error {
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, listingToDoc(l), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: putting listing %s: %v", common.ErrRemoteWriteFailed, l.ID, err)
	}
	return nil
}

func (s *MongoListingStore) Delete(ctx context.Context, id string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: deleting listing %s: %v", common.ErrRemoteWriteFailed, id, err)
	}
	return nil
}
