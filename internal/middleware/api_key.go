package middleware

import (
	"net/http"

	"github.com/ImranAoufi/coursia-final-mvp-design-sub001/internal/services/api_key"
	"github.com/gin-gonic/gin"
)

// APIKeyAuth validates the X-API-Key header used by generation workers on
// the callback endpoint.
func APIKeyAuth(apiKeyService *api_key.APIKeyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		apiKey, err := apiKeyService.ValidateKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set("api_key_user_id", apiKey.UserID)
		c.Next()
	}
}
