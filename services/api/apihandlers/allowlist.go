package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	allowlistDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/allowlist"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAllowlistAPI(rg *gin.RouterGroup) {
	rg.POST("/add-ip", mw.RequirePayload(), h.addIP)
	rg.DELETE("/remove-ip", mw.RequirePayload(), h.removeIP)
	rg.GET("/allowed-ips", h.listIPs)
}

type AddIPReq struct {
	IP   string `json:"ip"`
	Name string `json:"name"`
}

func (h *HttpEndpoints) addIP(c *gin.Context) {
	var req AddIPReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide an IP address"})
		return
	}

	entry, err := h.allowlistDBConn.AddEntry(req.IP, req.Name)
	if err != nil {
		if errors.Is(err, allowlistDB.ErrDuplicateIP) {
			c.JSON(http.StatusConflict, gin.H{"message": "IP address already exists"})
			return
		}
		slog.Error("error adding IP", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	slog.Info("IP added to allowlist", slog.String("ip", req.IP), slog.String("name", req.Name))
	c.JSON(http.StatusCreated, gin.H{"message": "IP added successfully", "entry": entry})
}

type RemoveIPReq struct {
	IP string `json:"ip"`
}

func (h *HttpEndpoints) removeIP(c *gin.Context) {
	var req RemoveIPReq
	if err := c.ShouldBindJSON(&req); err != nil || req.IP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide an IP address"})
		return
	}

	if err := h.allowlistDBConn.RemoveEntry(req.IP); err != nil {
		if errors.Is(err, allowlistDB.ErrIPNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "IP address not found"})
			return
		}
		slog.Error("error removing IP", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	slog.Info("IP removed from allowlist", slog.String("ip", req.IP))
	c.JSON(http.StatusOK, gin.H{"message": "IP removed successfully"})
}

func (h *HttpEndpoints) listIPs(c *gin.Context) {
	entries, err := h.allowlistDBConn.GetEntries()
	if err != nil {
		slog.Error("error reading allowlist", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
