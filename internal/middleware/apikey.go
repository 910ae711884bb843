package middleware

import (
	"crypto/subtle"
	"net/http"

	"hallway-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the shared secret for the public waitlist endpoint.
const APIKeyHeader = "X-API-Key"

// APIKeyRequired rejects requests whose X-API-Key header does not match the
// configured secret. The comparison is constant-time.
func APIKeyRequired(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expectedKey)) != 1 {
			log.Info("invalid or missing API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API key"})
			return
		}

		c.Next()
	}
}
