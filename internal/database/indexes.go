package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	clerkIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "clerkId", Value: 1}},
		Options: options.Index().
			SetName("clerkId_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating clerkId_unique index")
	_, err := indexes.CreateOne(ctx, clerkIDIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: clerkId index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: clerkId_unique index created")
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	// The unique name index backstops the counter: even if two transactions
	// somehow minted the same number, only one commit could succeed.
	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName("name_unique").
			SetUnique(true),
	}
	userIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("user_index"),
	}

	log.Println("EnsureOrderIndexes: creating name_unique and user_index indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{nameIndex, userIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	log.Println("EnsureOrderIndexes: order indexes created")
	return nil
}

func EnsurePackageIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("packages").Indexes()

	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}
	orderIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetName("orderId_index"),
	}

	log.Println("EnsurePackageIndexes: creating userId_index and orderId_index indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{userIDIndex, orderIDIndex})
	if err != nil {
		log.Println("EnsurePackageIndexes: package index error:", err)
		return err
	}
	log.Println("EnsurePackageIndexes: package indexes created")
	return nil
}

func EnsureAddressIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("addresses").Indexes()

	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}

	log.Println("EnsureAddressIndexes: creating userId_index index")
	_, err := indexes.CreateOne(ctx, userIDIndex)
	if err != nil {
		log.Println("EnsureAddressIndexes: userId index error:", err)
		return err
	}
	log.Println("EnsureAddressIndexes: userId_index index created")
	return nil
}

func EnsureCounterIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("counters").Indexes()

	nameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
		Options: options.Index().
			SetName("name_unique").
			SetUnique(true),
	}

	log.Println("EnsureCounterIndexes: creating name_unique index")
	_, err := indexes.CreateOne(ctx, nameIndex)
	if err != nil {
		log.Println("EnsureCounterIndexes: name index error:", err)
		return err
	}
	log.Println("EnsureCounterIndexes: name_unique index created")
	return nil
}
