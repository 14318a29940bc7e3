package interfaces

import (
	"context"

	"affiliatenest/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// ConsumeVerificationToken atomically flips the matching user to
	// verified and clears the token. Returns the user, or a not-found
	// error when no unconsumed token matches.
	ConsumeVerificationToken(ctx context.Context, token string) (*models.User, error)
}
