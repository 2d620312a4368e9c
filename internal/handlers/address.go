package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type addressRequest struct {
	AddressLine1  string `json:"addressLine1" binding:"required"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city" binding:"required"`
	Province      string `json:"province" binding:"required"`
	PostalCode    string `json:"postalCode" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required"`
	Name          string `json:"name" binding:"required"`
	IsDefault     bool   `json:"isDefault"`
}

func addressFromRequest(req addressRequest, userID primitive.ObjectID) models.Address {
	return models.Address{
		UserID:        userID,
		AddressLine1:  strings.TrimSpace(req.AddressLine1),
		AddressLine2:  strings.TrimSpace(req.AddressLine2),
		City:          strings.TrimSpace(req.City),
		Province:      strings.TrimSpace(req.Province),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		Name:          strings.TrimSpace(req.Name),
		IsDefault:     req.IsDefault,
	}
}

func GetUserAddresses(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/addresses"
		defer handlePanic(c, route)

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "isDefault", Value: -1}})
		cursor, err := db.Collection("addresses").Find(ctx, bson.M{"userId": userID}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}
		defer cursor.Close(ctx)

		addresses := make([]models.Address, 0)
		if err := cursor.All(ctx, &addresses); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}

		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

// CreateUserAddress inserts an address. Marking it default unsets the flag on
// the user's other addresses in the same transaction, so at most one default
// ever survives a commit.
func CreateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/addresses"
		defer handlePanic(c, route)

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		address := addressFromRequest(req, userID)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			if address.IsDefault {
				_, err := db.Collection("addresses").UpdateMany(
					sessCtx,
					bson.M{"userId": userID, "isDefault": true},
					bson.M{"$set": bson.M{"isDefault": false}},
				)
				if err != nil {
					return nil, err
				}
			}

			res, err := db.Collection("addresses").InsertOne(sessCtx, address)
			if err != nil {
				return nil, err
			}
			address.ID = res.InsertedID.(primitive.ObjectID)
			return nil, nil
		})
		if err != nil {
			if isTransientTxnError(err) {
				respondWithError(c, http.StatusConflict, route, "write conflict, retry")
				return
			}
			log.Printf("[%s] transaction failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] address %s created", route, address.ID.Hex())
		c.JSON(http.StatusCreated, gin.H{"address": address})
	}
}

func UpdateUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/addresses/:id"
		defer handlePanic(c, route)

		addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		address := addressFromRequest(req, userID)
		address.ID = addressID

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			if address.IsDefault {
				_, err := db.Collection("addresses").UpdateMany(
					sessCtx,
					bson.M{"userId": userID, "isDefault": true, "_id": bson.M{"$ne": addressID}},
					bson.M{"$set": bson.M{"isDefault": false}},
				)
				if err != nil {
					return nil, err
				}
			}

			res, err := db.Collection("addresses").UpdateOne(
				sessCtx,
				bson.M{"_id": addressID, "userId": userID},
				bson.M{"$set": bson.M{
					"addressLine1":  address.AddressLine1,
					"addressLine2":  address.AddressLine2,
					"city":          address.City,
					"province":      address.Province,
					"postalCode":    address.PostalCode,
					"contactNumber": address.ContactNumber,
					"name":          address.Name,
					"isDefault":     address.IsDefault,
				}},
			)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, addressNotFoundError{AddressID: addressID}
			}
			return nil, nil
		})
		if err != nil {
			var notFound addressNotFoundError
			if errors.As(err, &notFound) {
				respondWithError(c, http.StatusNotFound, route, "address not found")
				return
			}
			if isTransientTxnError(err) {
				respondWithError(c, http.StatusConflict, route, "write conflict, retry")
				return
			}
			log.Printf("[%s] transaction failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] address %s updated", route, addressID.Hex())
		c.JSON(http.StatusOK, gin.H{"address": address})
	}
}

// DeleteUserAddress removes a non-default address. The default address must
// be reassigned before it can be deleted.
func DeleteUserAddress(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/addresses/:id"
		defer handlePanic(c, route)

		addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid address id")
			return
		}

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var address models.Address
		err = db.Collection("addresses").FindOne(ctx, bson.M{"_id": addressID, "userId": userID}).Decode(&address)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "address not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if address.IsDefault {
			respondWithError(c, http.StatusConflict, route, "default address cannot be deleted")
			return
		}

		_, err = db.Collection("addresses").DeleteOne(ctx, bson.M{"_id": addressID, "userId": userID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] address %s deleted", route, addressID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "address deleted"})
	}
}

type addressNotFoundError struct {
	AddressID primitive.ObjectID
}

func (e addressNotFoundError) Error() string {
	return "address not found"
}
