package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserAuth validates the bearer token from the identity provider and injects
// the caller's clerkId into the context. Token issuance lives entirely with
// the provider; this layer only verifies.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseBearerClaims(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		clerkID, err := subjectFromClaims(claims)
		if err != nil {
			log.Println("[AUTH] [ERROR] sub claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(ContextClerkID, clerkID)
		c.Next()
	}
}
