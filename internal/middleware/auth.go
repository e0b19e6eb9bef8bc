package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linklytics/linklytics/internal/service"
	"github.com/linklytics/linklytics/pkg/response"
)

const userIDKey = "userID"

// Auth requires a valid Bearer session token and stores the user id in
// the gin context.
func Auth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		userID, err := service.ParseToken(token, secret)
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id, or 0 when the request
// carried no identity.
func UserID(c *gin.Context) int64 {
	if id, ok := c.Get(userIDKey); ok {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}
