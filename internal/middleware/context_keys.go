package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDHeader carries the caller's external identity, set by the gateway in
// front of this service.
const UserIDHeader = "X-User-ID"

const userIDKey = contextKey("userID")

// UserIdentity reads the caller identity from UserIDHeader and stores it in the
// Gin and request contexts. Requests without one are rejected with 401.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			GetLoggerFromContext(c).Warn("Request without caller identity")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + UserIDHeader + " header"})
			return
		}

		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))
		GetLoggerFromContext(c).Debug("Caller identified", "user_id", userID)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
			return userID, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
