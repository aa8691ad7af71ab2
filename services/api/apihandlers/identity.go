package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/identity"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddIdentityAPI(rg *gin.RouterGroup) {
	withJWT := mw.GetAndValidateUserJWT(h.tokenSignKey)
	rg.GET("/get_details", withJWT, h.getDetails)
	rg.GET("/get_2fa_code", withJWT, h.get2FACode)
	rg.GET("/check_inbox", withJWT, h.checkInbox)
}

// getDetails assembles a full disposable identity: a random name, a phone
// number and a temp email address.
func (h *HttpEndpoints) getDetails(c *gin.Context) {
	name, err := identity.RandomName()
	if err != nil {
		slog.Error("error picking random name", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"access": false, "message": "Something went wrong...!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"girlName": name,
		"number":   identity.GeneratePhoneNumber(),
		"email":    identity.TempEmail(),
	})
}

func (h *HttpEndpoints) get2FACode(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Key query is required"})
		return
	}

	code, err := h.twoFAClient.FetchCode(key)
	if err != nil {
		// upstream failure degrades to a not-found, the request itself is fine
		c.JSON(http.StatusNotFound, gin.H{"access": false, "message": "Something went wrong...!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": code})
}

func (h *HttpEndpoints) checkInbox(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email query is required"})
		return
	}

	messages, err := h.inboxClient.FetchMessages(email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"access": false, "message": "Something went wrong...!"})
		return
	}
	if len(messages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"access": true, "message": "No emails found."})
		return
	}
	c.JSON(http.StatusOK, messages)
}
