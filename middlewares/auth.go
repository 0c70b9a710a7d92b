package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "user_id"

type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

func AuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth sets the user id when a valid token is present and lets the
// request through either way.
func OptionalAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if userID, err := tokens.ValidateToken(tokenString); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}

// bearerToken reads the token from the Authorization header, falling back to
// the token query parameter for WebSocket clients that cannot set headers.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return token, token != ""
	}
	if token := c.Query("token"); token != "" {
		return token, true
	}
	return "", false
}

// UserID returns the authenticated user id or "".
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
