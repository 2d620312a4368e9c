package handlers

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

const (
	orderCounterName = "orderNumber"

	// First order ever created is named SD-#1000.
	firstOrderNumber = 1000
)

// nextOrderSequence atomically increments and reads the order counter. The
// increment runs as a single findAndModify, so concurrent callers can never
// observe the same value. Pass the transaction's session context so an
// aborted creation also rolls the increment back.
func nextOrderSequence(ctx context.Context, db *mongo.Database) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"name": orderCounterName},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}

	return counter.Seq, nil
}

// orderDisplayName maps the counter value to the human-readable order name.
// The counter's first issued value is 1, so naming starts at SD-#1000.
func orderDisplayName(seq int64) string {
	return fmt.Sprintf("SD-#%d", firstOrderNumber+seq-1)
}
