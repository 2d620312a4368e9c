package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the internal identity record. Accounts are minted by the external
// identity provider; ClerkID is the opaque subject it hands us on sign-in.
type User struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClerkID               string             `bson:"clerkId" json:"clerkId"`
	Email                 string             `bson:"email" json:"email"`
	FirstName             string             `bson:"firstName" json:"firstName"`
	LastName              string             `bson:"lastName" json:"lastName"`
	ContactNumber         string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	PrivacyPolicyAccepted bool               `bson:"privacyPolicyAccepted" json:"privacyPolicyAccepted"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}
