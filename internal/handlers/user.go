package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type syncUserRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type updateProfileRequest struct {
	FirstName             string `json:"firstName" binding:"required"`
	LastName              string `json:"lastName" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	ContactNumber         string `json:"contactNumber" binding:"required"`
	PrivacyPolicyAccepted bool   `json:"privacyPolicyAccepted"`
}

// SyncUser upserts the internal user record for the authenticated identity.
// The identity provider calls this on first sign-in; repeat calls refresh the
// profile fields without touching createdAt.
func SyncUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/sync"
		defer handlePanic(c, route)

		clerkID, ok := clerkIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req syncUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		opts := options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After)

		var user models.User
		err := db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"clerkId": clerkID},
			bson.M{
				"$set": bson.M{
					"email":     strings.TrimSpace(req.Email),
					"firstName": strings.TrimSpace(req.FirstName),
					"lastName":  strings.TrimSpace(req.LastName),
					"updatedAt": now,
				},
				"$setOnInsert": bson.M{
					"clerkId":   clerkID,
					"createdAt": now,
				},
			},
			opts,
		).Decode(&user)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] user %s synced", route, user.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func GetMe(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /me"
		defer handlePanic(c, route)

		clerkID, ok := clerkIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"clerkId": clerkID}).Decode(&user); err != nil {
			log.Println("[PROFILE] [ERROR] get me failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		addresses := make([]models.Address, 0)
		cursor, err := db.Collection("addresses").Find(ctx, bson.M{"userId": user.ID})
		if err == nil {
			defer cursor.Close(ctx)
			if err := cursor.All(ctx, &addresses); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "retrieval failed")
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"user":      user,
			"addresses": addresses,
		})
	}
}

func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /me"
		defer handlePanic(c, route)

		clerkID, ok := clerkIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req updateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").UpdateOne(
			ctx,
			bson.M{"clerkId": clerkID},
			bson.M{"$set": bson.M{
				"firstName":             strings.TrimSpace(req.FirstName),
				"lastName":              strings.TrimSpace(req.LastName),
				"email":                 strings.TrimSpace(req.Email),
				"contactNumber":         strings.TrimSpace(req.ContactNumber),
				"privacyPolicyAccepted": req.PrivacyPolicyAccepted,
				"updatedAt":             time.Now(),
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		log.Printf("[%s] profile updated", route)
		c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
	}
}
