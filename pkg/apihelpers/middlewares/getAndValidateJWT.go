package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	jwthandling "github.com/P2B-ARIF/facebook-info-api-backend/pkg/jwt-handling"
	userTypes "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/types"
	"github.com/gin-gonic/gin"
)

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("no Authorization header found")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("malformed Authorization header")
	}
	return parts[1], nil
}

// GetAndValidateUserJWT extracts the bearer token, validates it and attaches
// the decoded claims to the request context.
func GetAndValidateUserJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusUnauthorized, gin.H{"access": false, "error": "no token provided"})
			c.Abort()
			return
		}

		parsedToken, ok, err := jwthandling.ValidateUserToken(token, tokenSignKey)
		if err != nil || !ok {
			if err == nil {
				err = errors.New("token invalid")
			}
			slog.Warn("token validation failed", slog.String("error", err.Error()))
			c.JSON(http.StatusForbidden, gin.H{"access": false, "error": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set("validatedToken", parsedToken)
	}
}

// UserGetter is the account lookup needed for the membership check.
type UserGetter interface {
	GetUserByEmail(email string) (userTypes.User, error)
}

// GetAndValidateUserJWTWithMembership additionally loads the account and
// rejects expired memberships with a distinct payload, so clients can tell
// "renew your membership" apart from "not authenticated".
func GetAndValidateUserJWTWithMembership(tokenSignKey string, users UserGetter) gin.HandlerFunc {
	validateJWT := GetAndValidateUserJWT(tokenSignKey)
	return func(c *gin.Context) {
		validateJWT(c)
		if c.IsAborted() {
			return
		}

		claims := c.MustGet("validatedToken").(*jwthandling.UserClaims)
		user, err := users.GetUserByEmail(claims.Email)
		if err != nil {
			slog.Warn("account for token not found", slog.String("email", claims.Email), slog.String("error", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{"access": false, "error": "account not found"})
			c.Abort()
			return
		}

		if !user.Membership {
			c.JSON(http.StatusOK, gin.H{"access": false, "expired": true, "message": "membership expired"})
			c.Abort()
			return
		}
		c.Set("currentUser", user)
	}
}
