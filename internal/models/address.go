package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a delivery destination owned by a single user. At most one
// address per user carries IsDefault, enforced transactionally on write.
type Address struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	AddressLine1  string             `bson:"addressLine1" json:"addressLine1"`
	AddressLine2  string             `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City          string             `bson:"city" json:"city"`
	Province      string             `bson:"province" json:"province"`
	PostalCode    string             `bson:"postalCode" json:"postalCode"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Name          string             `bson:"name" json:"name"`
	IsDefault     bool               `bson:"isDefault" json:"isDefault"`
}
