package middleware

import (
	"net/http"
	"strings"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/auth"
	"github.com/gin-gonic/gin"
)

// BearerTokenAuth validates the Authorization header and puts user identity
// into the request context. SSE clients may pass the token as a query
// parameter because EventSource cannot set headers.
func BearerTokenAuth(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else if t := c.Query("token"); t != "" {
			tokenString = t
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		info, err := authService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("user_id", info.UserID)
		c.Set("username", info.Username)
		c.Next()
	}
}

// UserID pulls the authenticated user's ID out of the context.
func UserID(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
