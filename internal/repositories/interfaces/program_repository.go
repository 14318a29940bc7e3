package interfaces

import (
	"context"

	"affiliatenest/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *models.AffiliateProgram) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AffiliateProgram, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.AffiliateProgram, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
}
