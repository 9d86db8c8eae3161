package remote

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	listingsCollection = "listings"
	reviewsCollection  = "reviews"

	connectTimeout = 10 * time.Second
)

// Stores bundles the per-family remote stores bound to one database.
type Stores struct {
	client   *mongo.Client
	Profiles *MongoProfileStore
	Listings *MongoListingStore
	Reviews  *MongoReviewStore
}

// Connect dials the remote store and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database string) (*Stores, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to remote store: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging remote store: %w", err)
	}

	db := client.Database(database)
	return &Stores{
		client:   client,
		Profiles: NewMongoProfileStore(db.Collection(usersCollection)),
		Listings: NewMongoListingStore(db.Collection(listingsCollection)),
		Reviews:  NewMongoReviewStore(db.Collection(reviewsCollection)),
	}, nil
}

// Close disconnects the client.
func (s *Stores) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
