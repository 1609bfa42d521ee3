package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CronAuth gates the health endpoint behind the shared secret the external
// cron service sends as a bearer token. An unset secret locks the endpoint
// rather than opening it.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if secret == "" || authHeader != "Bearer "+secret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
