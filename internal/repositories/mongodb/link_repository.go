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

type linkRepository struct {
	collection *mongo.Collection
}

func NewLinkRepository(db *mongo.Database) interfaces.LinkRepository {
	return &linkRepository{
		collection: db.Collection("affiliate_links"),
	}
}

func (r *linkRepository) Create(ctx context.Context, link *models.AffiliateLink) error {
	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, link)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create link: %w", interfaces.ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create link: %w", err)
	}

	return nil
}

func (r *linkRepository) GetByToken(ctx context.Context, token string) (*models.AffiliateLink, error) {
	var link models.AffiliateLink
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&link)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("link: %w", interfaces.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

func (r *linkRepository) GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateLink, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer cursor.Close(ctx)

	var links []*models.AffiliateLink
	if err := cursor.All(ctx, &links); err != nil {
		return nil, fmt.Errorf("failed to decode links: %w", err)
	}

	return links, nil
}
