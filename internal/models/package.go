package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package is one trackable physical item. OrderID is written once when the
// package is linked to its order and never changes afterwards.
type Package struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingNumber string             `bson:"trackingNumber" json:"trackingNumber"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Value          string             `bson:"value" json:"value"`
	Vendor         string             `bson:"vendor" json:"vendor"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	OrderID        primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Status         string             `bson:"status" json:"status"`
	FinalAmount    float64            `bson:"finalAmount,omitempty" json:"finalAmount,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
