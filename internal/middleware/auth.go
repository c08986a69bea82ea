package middleware

import (
	"net/http"

	"github.com/Goodidea-backend-camp/medium-blog-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

// UserIDKey is the gin context key holding the authenticated subject.
const UserIDKey = "userId"

// NotLoggedInMessage is returned with 403 whenever the gate rejects a request.
const NotLoggedInMessage = "You are not logged in"

// AuthRequired verifies the credential in the Authorization header and stores
// its subject on the context for downstream handlers. Missing, malformed,
// forged and expired credentials are all rejected the same way.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.ExtractToken(c.GetHeader("Authorization"))

		claims, err := auth.ValidateToken(token, jwtSecret)
		if err != nil || claims == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": NotLoggedInMessage,
			})
			return
		}

		c.Set(UserIDKey, string(claims.UserID))

		c.Next()
	}
}

// UserID returns the subject stored by AuthRequired, or "" when the request
// did not pass through the gate.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
