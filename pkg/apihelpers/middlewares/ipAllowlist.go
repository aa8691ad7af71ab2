package middlewares

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// IPChecker answers whether a client IP is on the allowlist.
type IPChecker interface {
	IsIPAllowed(ip string) (bool, error)
}

func clientIPFromRequest(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		// first hop is the original client
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	return c.ClientIP()
}

// IPAllowlist denies every request whose client IP is not on the allowlist.
// A failing allowlist lookup fails closed.
func IPAllowlist(checker IPChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := clientIPFromRequest(c)

		allowed, err := checker.IsIPAllowed(clientIP)
		if err != nil {
			slog.Error("error reading allowlist", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"access": false, "error": "internal server error"})
			c.Abort()
			return
		}
		if !allowed {
			slog.Warn("request from IP not on allowlist", slog.String("ip", clientIP))
			c.JSON(http.StatusForbidden, gin.H{"access": false, "error": "Access denied: Your IP is not allowed"})
			c.Abort()
			return
		}
		c.Next()
	}
}
