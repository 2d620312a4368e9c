package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Counter is a named monotonic sequence. Seq must only ever be mutated through
// an atomic increment-and-fetch, never a read-then-write pair.
type Counter struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Seq  int64              `bson:"seq" json:"seq"`
}
