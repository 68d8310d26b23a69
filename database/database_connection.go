package database

import (
	"context"
	"fmt"

	"github.com/auswindowshrouds/awsbackend/config"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Connect dials MongoDB once at startup and verifies the connection with a
// ping. The returned handle is injected into the handlers; there is no
// package-level client.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.URI).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.DatabaseName), nil
}

// EnsureIndexes creates the unique indexes the write paths rely on: product
// and blog slugs, and user emails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		"products":   {Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		"blog_posts": {Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		"users":      {Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
	}

	for col, model := range indexes {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", col, err)
		}
	}
	return nil
}
