package interfaces

import (
	"context"

	"affiliatenest/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *models.Referral) error
	GetByProgram(ctx context.Context, programID primitive.ObjectID) ([]*models.Referral, error)
	GetByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Referral, error)
	GetByReferredUser(ctx context.Context, userID primitive.ObjectID) (*models.Referral, error)
}
