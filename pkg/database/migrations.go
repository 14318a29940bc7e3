package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes the application relies
// on. Uniqueness of emails, usernames and link tokens under concurrent
// writes is enforced here, at the storage layer, not by request locking.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse: the field is unset once the token is consumed.
			Keys:    bson.D{{Key: "verification_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	links := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
	}
	if _, err := db.Collection("affiliate_links").Indexes().CreateMany(ctx, links); err != nil {
		return fmt.Errorf("failed to create link indexes: %w", err)
	}

	programs := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
	}
	if _, err := db.Collection("affiliate_programs").Indexes().CreateMany(ctx, programs); err != nil {
		return fmt.Errorf("failed to create program indexes: %w", err)
	}

	referrals := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "program_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "owner_id", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "referred_user_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := db.Collection("referrals").Indexes().CreateMany(ctx, referrals); err != nil {
		return fmt.Errorf("failed to create referral indexes: %w", err)
	}

	return nil
}
