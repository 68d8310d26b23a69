package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/auswindowshrouds/awsbackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// SeedAdminUser upserts the bootstrap admin account so the panel is reachable
// on a fresh database. Existing accounts are left untouched.
func SeedAdminUser(ctx context.Context, usersCol *mongo.Collection, email, password string, logger *zap.Logger) error {
	if email == "" || password == "" {
		return fmt.Errorf("missing ADMIN_EMAIL or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()

	filter := bson.M{"email": email}
	update := bson.M{
		"$setOnInsert": bson.M{
			"email":        email,
			"passwordHash": hash,
			"role":         models.RoleAdmin,
			"isActive":     true,
			"createdAt":    now,
			"updatedAt":    now,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)

	res, err := usersCol.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if res.UpsertedCount == 1 {
		logger.Info("admin user seeded", zap.String("email", email))
	} else {
		logger.Info("admin user already exists", zap.String("email", email))
	}

	return nil
}
