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

const (
	paymentStatusPaid   = "paid"
	paymentStatusUnpaid = "unpaid"
)

// GetUserOrders lists the authenticated user's orders, newest first.
func GetUserOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/orders"
		defer handlePanic(c, route)

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"user": userID}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}

		log.Printf("[%s] returning %d orders", route, len(orders))
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrderByID returns one of the user's orders with its packages resolved.
func GetOrderByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		userID, ok := resolveUserID(c, db, route)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID, "user": userID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
			return
		}

		packages := make([]models.Package, 0, len(order.Packages))
		if len(order.Packages) > 0 {
			cursor, err := db.Collection("packages").Find(ctx, bson.M{"_id": bson.M{"$in": order.Packages}})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
				return
			}
			defer cursor.Close(ctx)

			if err := cursor.All(ctx, &packages); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"order": order, "packages": packages})
	}
}

type updateOrderRequest struct {
	Status           string   `json:"status" binding:"required"`
	PaymentStatus    string   `json:"paymentStatus" binding:"required,oneof=paid unpaid"`
	FinalAmount      *float64 `json:"finalAmount"`
	Insurance        *float64 `json:"insurance"`
	MiscellaneousFee *float64 `json:"miscellaneousFee"`
	LocalDeliveryFee *float64 `json:"localDeliveryFee"`
	Discount         *float64 `json:"discount"`
	AirwayBillNumber string   `json:"airwayBillNumber"`
}

// buildOrderUpdate validates the admin pricing/status update and produces the
// $set document. Payment and delivery timestamps land alongside the flags
// they belong to.
func buildOrderUpdate(req updateOrderRequest, now time.Time) (bson.M, error) {
	if !models.IsValidStatus(req.Status) {
		return nil, errors.New("invalid status")
	}

	set := bson.M{
		"status":        req.Status,
		"paymentStatus": req.PaymentStatus,
		"isPaid":        req.PaymentStatus == paymentStatusPaid,
		"isDelivered":   req.Status == models.StatusDelivered,
		"updatedAt":     now,
	}
	if req.PaymentStatus == paymentStatusPaid {
		set["paidAt"] = now
	}
	if req.Status == models.StatusDelivered {
		set["deliveredAt"] = now
	}
	if airwayBill := strings.TrimSpace(req.AirwayBillNumber); airwayBill != "" {
		set["airwayBillNumber"] = airwayBill
	}

	amounts := map[string]*float64{
		"finalAmount":      req.FinalAmount,
		"insurance":        req.Insurance,
		"miscellaneousFee": req.MiscellaneousFee,
		"localDeliveryFee": req.LocalDeliveryFee,
		"discount":         req.Discount,
	}
	for field, value := range amounts {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, errors.New(field + " must not be negative")
		}
		set[field] = *value
	}

	return set, nil
}

// UpdateOrder is the admin pricing/status step.
func UpdateOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set, err := buildOrderUpdate(req, time.Now())
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("orders").UpdateByID(ctx, orderID, bson.M{"$set": set})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Printf("[%s] order %s updated", route, orderID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "order updated"})
	}
}

// DeleteOrder removes an order that no longer holds any packages. Orders with
// packages must be drained through RemovePackage first so nothing is orphaned.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{
			"_id":      orderID,
			"packages": bson.M{"$size": 0},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if result.DeletedCount == 0 {
			// Either the order does not exist or it still holds packages.
			exists, err := db.Collection("orders").CountDocuments(ctx, bson.M{"_id": orderID})
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
			if exists > 0 {
				respondWithError(c, http.StatusConflict, route, "order still has packages")
				return
			}
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}

		log.Printf("[%s] order %s deleted", route, orderID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
