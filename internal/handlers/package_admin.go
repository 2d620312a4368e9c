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

	"backend/internal/models"
)

type updatePackageRequest struct {
	Vendor         string   `json:"vendor" binding:"required"`
	TrackingNumber string   `json:"trackingNumber" binding:"required"`
	Value          string   `json:"value" binding:"required"`
	Description    string   `json:"description"`
	ShipmentPrice  *float64 `json:"shipmentPrice"`
	Status         string   `json:"status" binding:"required"`
}

// buildPackageUpdate validates the request and produces the $set document.
// The status only has to belong to the vocabulary; transition order is left
// to admin judgement.
func buildPackageUpdate(req updatePackageRequest, now time.Time) (bson.M, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, errors.New("invalid status")
	}

	set := bson.M{
		"vendor":         strings.TrimSpace(req.Vendor),
		"trackingNumber": strings.TrimSpace(req.TrackingNumber),
		"value":          strings.TrimSpace(req.Value),
		"description":    strings.TrimSpace(req.Description),
		"status":         req.Status,
		"updatedAt":      now,
	}
	if req.ShipmentPrice != nil {
		if *req.ShipmentPrice < 0 {
			return nil, errors.New("shipmentPrice must not be negative")
		}
		set["finalAmount"] = *req.ShipmentPrice
	}

	return set, nil
}

// UpdatePackage mutates a package in place (admin, any user's package).
func UpdatePackage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/packages/:id"
		defer handlePanic(c, route)

		updatePackage(c, db, route, nil)
	}
}

// UpdateUserPackage mutates a package owned by the authenticated user.
func UpdateUserPackage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/packages/:id"
		defer handlePanic(c, route)

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}
		updatePackage(c, db, route, &userID)
	}
}

func updatePackage(c *gin.Context, db *mongo.Database, route string, userID *primitive.ObjectID) {
	packageID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return
	}

	var req updatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	set, err := buildPackageUpdate(req, time.Now())
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, err.Error())
		return
	}

	filter := bson.M{"_id": packageID}
	if userID != nil {
		filter["userId"] = *userID
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	res, err := db.Collection("packages").UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}
	if res.MatchedCount == 0 {
		respondWithError(c, http.StatusNotFound, route, "package not found")
		return
	}

	log.Printf("[%s] package %s updated", route, packageID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "package updated"})
}

// RemovePackage deletes a package (admin, any user's package) and pulls it
// from its owning order.
func RemovePackage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/packages/:id"
		defer handlePanic(c, route)

		removePackage(c, db, route, nil)
	}
}

// RemoveUserPackage deletes a package owned by the authenticated user.
func RemoveUserPackage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/packages/:id"
		defer handlePanic(c, route)

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}
		removePackage(c, db, route, &userID)
	}
}

// removePackage runs the delete and the order-list pull in one transaction so
// an order never keeps a dangling package reference. The order itself is kept
// even when its package list becomes empty.
func removePackage(c *gin.Context, db *mongo.Database, route string, userID *primitive.ObjectID) {
	packageID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondWithError(c, http.StatusBadRequest, route, "invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	session, err := db.Client().StartSession()
	if err != nil {
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		filter := bson.M{"_id": packageID}
		if userID != nil {
			filter["userId"] = *userID
		}

		var pkg models.Package
		err := db.Collection("packages").FindOne(sessCtx, filter).Decode(&pkg)
		if err == mongo.ErrNoDocuments {
			return nil, packageNotFoundError{PackageID: packageID}
		}
		if err != nil {
			return nil, err
		}

		if !pkg.OrderID.IsZero() {
			_, err = db.Collection("orders").UpdateByID(sessCtx, pkg.OrderID, bson.M{
				"$pull": bson.M{"packages": pkg.ID},
				"$set":  bson.M{"updatedAt": time.Now()},
			})
			if err != nil {
				return nil, err
			}
		}

		_, err = db.Collection("packages").DeleteOne(sessCtx, bson.M{"_id": pkg.ID})
		return nil, err
	})
	if err != nil {
		var notFound packageNotFoundError
		if errors.As(err, &notFound) {
			respondWithError(c, http.StatusNotFound, route, "package not found")
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

	log.Printf("[%s] package %s removed", route, packageID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "package removed"})
}

// resolveUserID maps the authenticated clerkId to the internal user id,
// responding with the appropriate error when it cannot.
func resolveUserID(c *gin.Context, db *mongo.Database, route string) (primitive.ObjectID, bool) {
	clerkID, ok := clerkIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&user); err != nil {
		respondWithError(c, http.StatusNotFound, route, "user not found")
		return primitive.NilObjectID, false
	}

	return user.ID, true
}
