package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order groups one or more packages toward a single delivery address. Name is
// the generated "SD-#<n>" display name and is unique across all orders. The
// packages list is non-empty at creation; financial fields are filled in by
// the admin pricing step after the fact.
type Order struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	User             primitive.ObjectID   `bson:"user" json:"user"`
	Status           string               `bson:"status" json:"status"`
	Packages         []primitive.ObjectID `bson:"packages" json:"packages"`
	Address          primitive.ObjectID   `bson:"address" json:"address"`
	FinalAmount      float64              `bson:"finalAmount,omitempty" json:"finalAmount,omitempty"`
	Insurance        float64              `bson:"insurance,omitempty" json:"insurance,omitempty"`
	MiscellaneousFee float64              `bson:"miscellaneousFee,omitempty" json:"miscellaneousFee,omitempty"`
	LocalDeliveryFee float64              `bson:"localDeliveryFee,omitempty" json:"localDeliveryFee,omitempty"`
	Discount         float64              `bson:"discount,omitempty" json:"discount,omitempty"`
	AirwayBillNumber string               `bson:"airwayBillNumber,omitempty" json:"airwayBillNumber,omitempty"`
	PaymentStatus    string               `bson:"paymentStatus,omitempty" json:"paymentStatus,omitempty"`
	IsPaid           bool                 `bson:"isPaid" json:"isPaid"`
	PaidAt           *time.Time           `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	IsDelivered      bool                 `bson:"isDelivered" json:"isDelivered"`
	DeliveredAt      *time.Time           `bson:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
	CreatedAt        time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time            `bson:"updatedAt" json:"updatedAt"`
}
