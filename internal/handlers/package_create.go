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

/* =========================
   REQUEST DTOs
========================= */

const (
	creationSingleOrder   = "singleOrder"
	creationConsolidation = "consolidation"
)

type createPackageRequest struct {
	TrackingNumber string `json:"trackingNumber" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Value          string `json:"value" binding:"required"`
	Vendor         string `json:"vendor" binding:"required"`
	Type           string `json:"type" binding:"required,oneof=singleOrder consolidation"`
	Address        string `json:"address"`
	OrderID        string `json:"orderId"`
}

// creationTarget is the validated, mode-specific half of a create request:
// the delivery address for a new order, or the order a package joins.
type creationTarget struct {
	Type      string
	AddressID primitive.ObjectID
	OrderID   primitive.ObjectID
}

func resolveCreationTarget(req createPackageRequest) (creationTarget, error) {
	switch req.Type {
	case creationSingleOrder:
		addressID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.Address))
		if err != nil {
			return creationTarget{}, errors.New("address is required for a single order")
		}
		return creationTarget{Type: creationSingleOrder, AddressID: addressID}, nil
	case creationConsolidation:
		orderID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.OrderID))
		if err != nil {
			return creationTarget{}, errors.New("orderId is required for consolidation")
		}
		return creationTarget{Type: creationConsolidation, OrderID: orderID}, nil
	default:
		return creationTarget{}, errors.New("invalid creation type")
	}
}

/* =========================
   CREATE PACKAGE
========================= */

// CreatePackage creates a package and either wraps it in a brand-new order
// (minting the next SD-# name) or appends it to an existing one. Both
// collections are written inside a single transaction: no package without its
// order link, and no order referencing a package that was never committed.
func CreatePackage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/packages"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		clerkID, ok := clerkIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req createPackageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		target, err := resolveCreationTarget(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
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

		var (
			createdPackage models.Package
			createdOrder   *models.Order
		)
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			var user models.User
			err := db.Collection("users").FindOne(sessCtx, bson.M{"clerkId": clerkID}).Decode(&user)
			if err == mongo.ErrNoDocuments {
				return nil, userNotFoundError{ClerkID: clerkID}
			}
			if err != nil {
				return nil, err
			}

			now := time.Now()
			pkg := models.Package{
				TrackingNumber: strings.TrimSpace(req.TrackingNumber),
				Description:    strings.TrimSpace(req.Description),
				Value:          strings.TrimSpace(req.Value),
				Vendor:         strings.TrimSpace(req.Vendor),
				UserID:         user.ID,
				Status:         models.StatusPending,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			res, err := db.Collection("packages").InsertOne(sessCtx, pkg)
			if err != nil {
				return nil, err
			}
			pkg.ID = res.InsertedID.(primitive.ObjectID)

			switch target.Type {
			case creationSingleOrder:
				seq, err := nextOrderSequence(sessCtx, db)
				if err != nil {
					return nil, err
				}

				order := models.Order{
					Name:      orderDisplayName(seq),
					User:      user.ID,
					Status:    models.StatusPending,
					Packages:  []primitive.ObjectID{pkg.ID},
					Address:   target.AddressID,
					CreatedAt: now,
					UpdatedAt: now,
				}
				orderRes, err := db.Collection("orders").InsertOne(sessCtx, order)
				if err != nil {
					return nil, err
				}
				order.ID = orderRes.InsertedID.(primitive.ObjectID)
				pkg.OrderID = order.ID
				createdOrder = &order

			case creationConsolidation:
				updateRes, err := db.Collection("orders").UpdateOne(
					sessCtx,
					bson.M{"_id": target.OrderID, "user": user.ID},
					bson.M{
						"$push": bson.M{"packages": pkg.ID},
						"$set":  bson.M{"updatedAt": now},
					},
				)
				if err != nil {
					return nil, err
				}
				if updateRes.MatchedCount == 0 {
					return nil, orderNotFoundError{OrderID: target.OrderID}
				}
				pkg.OrderID = target.OrderID
			}

			// Complete the bidirectional link before commit.
			_, err = db.Collection("packages").UpdateByID(sessCtx, pkg.ID, bson.M{
				"$set": bson.M{"orderId": pkg.OrderID},
			})
			if err != nil {
				return nil, err
			}

			createdPackage = pkg
			return nil, nil
		})
		if err != nil {
			var userErr userNotFoundError
			if errors.As(err, &userErr) {
				respondWithError(c, http.StatusNotFound, route, "user not found")
				return
			}
			var orderErr orderNotFoundError
			if errors.As(err, &orderErr) {
				respondWithError(c, http.StatusNotFound, route, "order not found")
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

		response := gin.H{"package": createdPackage}
		if createdOrder != nil {
			response["order"] = createdOrder
			log.Printf("[%s] order %s created with package %s", route, createdOrder.Name, createdPackage.ID.Hex())
		} else {
			log.Printf("[%s] package %s consolidated into order %s", route, createdPackage.ID.Hex(), createdPackage.OrderID.Hex())
		}

		c.JSON(http.StatusCreated, response)
	}
}

type userNotFoundError struct {
	ClerkID string
}

func (e userNotFoundError) Error() string {
	return "user not found"
}

type orderNotFoundError struct {
	OrderID primitive.ObjectID
}

func (e orderNotFoundError) Error() string {
	return "order not found"
}

type packageNotFoundError struct {
	PackageID primitive.ObjectID
}

func (e packageNotFoundError) Error() string {
	return "package not found"
}
