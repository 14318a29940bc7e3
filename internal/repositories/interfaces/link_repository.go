package interfaces

import (
	"context"

	"affiliatenest/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LinkRepository interface {
	// Create persists a new link. Inserting a token that already exists
	// fails with a duplicate-token error the issuer retries on.
	Create(ctx context.Context, link *models.AffiliateLink) error
	GetByToken(ctx context.Context, token string) (*models.AffiliateLink, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateLink, error)
}
