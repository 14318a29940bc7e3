package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
)

// Referral records one attribution event: either a tracked link visit
// (ReferredUserID nil) or a signup through a referral link (ReferredUserID
// set to the new account). Referrals are never rewritten after creation;
// status and commission are advanced by the settlement process.
type Referral struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	LinkID         primitive.ObjectID  `json:"link_id" bson:"link_id" validate:"required"`
	OwnerID        primitive.ObjectID  `json:"owner_id" bson:"owner_id" validate:"required"`
	ProgramID      primitive.ObjectID  `json:"program_id" bson:"program_id" validate:"required"`
	ReferredUserID *primitive.ObjectID `json:"referred_user_id,omitempty" bson:"referred_user_id,omitempty"`
	Status         ReferralStatus      `json:"status" bson:"status"`
	Commission     float64             `json:"commission" bson:"commission"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
}
