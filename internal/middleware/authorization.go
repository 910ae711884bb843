package middleware

import (
	"net/http"

	"hallway-backend/pkg/auth"
	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// AdminOnly restricts a route group to sessions carrying the admin role. It
// must run after the session middleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		claims, ok := auth.ClaimsFromContext(c)
		if !ok {
			log.Error("session claims not found in context")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if claims.Role != auth.RoleAdmin {
			log.Info("unauthorized access attempt to admin endpoint",
				zap.String("user_id", claims.UserID.String()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Next()
	}
}
