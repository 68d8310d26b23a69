package quotes

import (
	"context"

	"github.com/auswindowshrouds/awsbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoStore is the production RecordStore backed by the quote_requests
// collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("quote_requests")}
}

func (s *MongoStore) InsertQuoteRequest(ctx context.Context, qr *models.QuoteRequest) (string, error) {
	qr.ID = bson.NewObjectID()
	if _, err := s.col.InsertOne(ctx, qr); err != nil {
		return "", err
	}
	return qr.ID.Hex(), nil
}
