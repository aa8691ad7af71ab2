package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HasValidAPIKey guards the management routes with a static API key.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Api-Key")
		if key == "" {
			slog.Error("A valid API key missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid API key missing"})
			return
		}

		for _, vk := range validKeys {
			if key == vk {
				c.Next()
				return
			}
		}

		slog.Error("A valid API key missing")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "A valid API key missing"})
	}
}
