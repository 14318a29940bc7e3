package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleAffiliate UserRole = "affiliate"
	UserRoleAdmin     UserRole = "admin"
)

// User is created unverified at registration and becomes verified exactly
// once by consuming its verification token; the token is cleared on success
// and never validates again.
type User struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username          string             `json:"username" bson:"username" validate:"required,min=3,max=30"`
	Email             string             `json:"email" bson:"email" validate:"required,email"`
	Password          string             `json:"-" bson:"password"`
	Role              UserRole           `json:"role" bson:"role"`
	Verified          bool               `json:"verified" bson:"verified"`
	VerificationToken string             `json:"-" bson:"verification_token,omitempty"`
	StripeAccountID   string             `json:"-" bson:"stripe_account_id,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}
