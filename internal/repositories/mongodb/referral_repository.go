package mongodb

import (
	"context"
	"fmt"
	"time"

	"affiliatenest/internal/models"
	"affiliatenest/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type referralRepository struct {
	collection *mongo.Collection
}

func NewReferralRepository(db *mongo.Database) interfaces.ReferralRepository {
	return &referralRepository{
		collection: db.Collection("referrals"),
	}
}

func (r *referralRepository) Create(ctx context.Context, referral *models.Referral) error {
	referral.ID = primitive.NewObjectID()
	referral.CreatedAt = time.Now()
	if referral.Status == "" {
		referral.Status = models.ReferralStatusPending
	}

	_, err := r.collection.InsertOne(ctx, referral)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}

	return nil
}

func (r *referralRepository) GetByProgram(ctx context.Context, programID primitive.ObjectID) ([]*models.Referral, error) {
	return r.find(ctx, bson.M{"program_id": programID})
}

func (r *referralRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Referral, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID})
}

func (r *referralRepository) GetByReferredUser(ctx context.Context, userID primitive.ObjectID) (*models.Referral, error) {
	var referral models.Referral
	err := r.collection.FindOne(ctx, bson.M{"referred_user_id": userID}).Decode(&referral)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("referral: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}

	return &referral, nil
}

func (r *referralRepository) find(ctx context.Context, filter bson.M) ([]*models.Referral, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err := cursor.All(ctx, &referrals); err != nil {
		return nil, fmt.Errorf("failed to decode referrals: %w", err)
	}

	return referrals, nil
}
