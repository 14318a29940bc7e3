package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AffiliateLink binds a globally unique tracking token to one
// (owner, program) pair. Links are immutable once issued.
type AffiliateLink struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `json:"owner_id" bson:"owner_id" validate:"required"`
	ProgramID primitive.ObjectID `json:"program_id" bson:"program_id" validate:"required"`
	Token     string             `json:"token" bson:"token" validate:"required"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
