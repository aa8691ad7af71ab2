package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	usermanagement "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/pwhash"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthAPI(rg *gin.RouterGroup) {
	rg.PUT("/auth/login", mw.RequirePayload(), h.loginWithEmail)
	rg.GET("/user_verify", mw.GetAndValidateUserJWTWithMembership(h.tokenSignKey, h.userDBConn), h.userVerify)
}

func (h *HttpEndpoints) AddUserManagementAPI(rg *gin.RouterGroup) {
	rg.POST("/add-user", mw.RequirePayload(), h.addUser)
	rg.PUT("/block-user", mw.RequirePayload(), h.blockUser)
	rg.PUT("/to-active", mw.RequirePayload(), h.reactivateUser)
	rg.GET("/password/bcrypt", h.hashPassword)
}

type LoginWithEmailReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HttpEndpoints) loginWithEmail(c *gin.Context) {
	var req LoginWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	result, err := usermanagement.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usermanagement.ErrInvalidCredentials):
			slog.Warn("login attempt with wrong credentials", slog.String("email", req.Email))
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		case errors.Is(err, usermanagement.ErrSessionActive):
			slog.Warn("login attempt on account in use", slog.String("email", req.Email))
			c.JSON(http.StatusForbidden, gin.H{
				"access":  false,
				"message": "Access denied: same email login on multiple devices not allowed",
			})
		case errors.Is(err, usermanagement.ErrAccountBlocked):
			slog.Warn("login attempt on blocked account", slog.String("email", req.Email))
			c.JSON(http.StatusForbidden, gin.H{"access": false, "message": "Access denied: account is blocked"})
		default:
			slog.Error("error during login", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	if result.MembershipExpired {
		c.JSON(http.StatusOK, gin.H{"access": false, "expired": true, "message": "Membership expired"})
		return
	}

	slog.Info("login successful", slog.String("email", result.User.Email))
	c.JSON(http.StatusOK, gin.H{"access": true, "message": "Login successful", "token": result.Token})
}

func (h *HttpEndpoints) userVerify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"access": true})
}

type AddUserReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *HttpEndpoints) addUser(c *gin.Context) {
	var req AddUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	userID, err := usermanagement.AddUser(req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, usermanagement.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email format"})
		case errors.Is(err, usermanagement.ErrUserExists):
			slog.Warn("attempt to add existing user", slog.String("email", req.Email))
			c.JSON(http.StatusConflict, gin.H{"message": "This user already exists"})
		default:
			slog.Error("error adding user", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	slog.Info("user added", slog.String("email", req.Email))
	c.JSON(http.StatusCreated, gin.H{"message": "User added successfully", "userId": userID})
}

type UserEmailReq struct {
	Email string `json:"email"`
}

func (h *HttpEndpoints) blockUser(c *gin.Context) {
	var req UserEmailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := usermanagement.BlockUser(req.Email); err != nil {
		if errors.Is(err, usermanagement.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		slog.Error("error blocking user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	slog.Info("user blocked", slog.String("email", req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *HttpEndpoints) reactivateUser(c *gin.Context) {
	var req UserEmailReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := usermanagement.ReactivateUser(req.Email); err != nil {
		if errors.Is(err, usermanagement.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		slog.Error("error reactivating user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	slog.Info("user reactivated", slog.String("email", req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *HttpEndpoints) hashPassword(c *gin.Context) {
	password := c.Query("password")
	if password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password query is required"})
		return
	}

	hashedPassword, err := pwhash.HashPassword(password)
	if err != nil {
		slog.Error("error generating password hash", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hashedPassword": hashedPassword})
}
