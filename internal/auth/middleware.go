package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "auth_user_id"

// Middleware resolves the X-API-Key header to a user and aborts with 401
// when the key is missing or unknown. Handlers downstream only ever see
// the resolved user ID.
func Middleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		user, err := svc.Resolve(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID set by Middleware.
func CurrentUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
