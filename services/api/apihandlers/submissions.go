package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	mw "github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
	jwthandling "github.com/P2B-ARIF/facebook-info-api-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddSubmissionAPI(rg *gin.RouterGroup) {
	withMembership := mw.GetAndValidateUserJWTWithMembership(h.tokenSignKey, h.userDBConn)
	rg.PUT("/mail/complete", mw.RequirePayload(), withMembership, h.appendMailSubmission)
	rg.POST("/mail/insta2fa", mw.RequirePayload(), withMembership, h.appendInstaSubmission)

	withJWT := mw.GetAndValidateUserJWT(h.tokenSignKey)
	rg.PUT("/api/approved/:yearMonth/:date", mw.RequirePayload(), withJWT, h.approveMailSubmissions)
	rg.PUT("/api/instagram/approved/:date", mw.RequirePayload(), withJWT, h.approveInstaSubmissions)
	rg.DELETE("/api/instagram/:date", mw.RequirePayload(), withJWT, h.deleteInstaSubmissions)
}

type MailSubmissionReq struct {
	Mail  string `json:"mail"`
	Pass  string `json:"pass"`
	UID   string `json:"uid"`
	TwoFA string `json:"twoFA"`
	Mode  string `json:"mode"`
}

func (h *HttpEndpoints) appendMailSubmission(c *gin.Context) {
	var req MailSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Mail == "" || req.Pass == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Mail and pass are required"})
		return
	}
	if req.Mode != submissionDB.MODE_QUICK && req.Mode != submissionDB.MODE_COMPLETE {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Mode must be quick or complete"})
		return
	}

	claims := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	rec := submissionDB.Submission{
		Mail:      req.Mail,
		Pass:      req.Pass,
		UID:       req.UID,
		TwoFA:     req.TwoFA,
		Mode:      req.Mode,
		UserEmail: claims.Email,
		CreatedAt: time.Now(),
	}

	h.appendSubmission(c, submissionDB.DOMAIN_FACEBOOK, rec)
}

type InstaSubmissionReq struct {
	Username string `json:"username"`
	Pass     string `json:"pass"`
	TwoFA    string `json:"twoFA"`
}

func (h *HttpEndpoints) appendInstaSubmission(c *gin.Context) {
	var req InstaSubmissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload"})
		return
	}
	if req.Username == "" || req.TwoFA == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and twoFA are required"})
		return
	}

	claims := c.MustGet("validatedToken").(*jwthandling.UserClaims)
	rec := submissionDB.Submission{
		UID:       req.Username,
		Pass:      req.Pass,
		TwoFA:     req.TwoFA,
		Mode:      submissionDB.MODE_INSTA2FA,
		UserEmail: claims.Email,
		CreatedAt: time.Now(),
	}

	h.appendSubmission(c, submissionDB.DOMAIN_INSTAGRAM, rec)
}

func (h *HttpEndpoints) appendSubmission(c *gin.Context, domain string, rec submissionDB.Submission) {
	if err := h.submissionDBConn.Append(domain, today(), rec); err != nil {
		if errors.Is(err, submissionDB.ErrDuplicateSubmission) {
			slog.Warn("duplicate submission rejected", slog.String("domain", domain), slog.String("userEmail", rec.UserEmail))
			c.JSON(http.StatusConflict, gin.H{"message": "Submission already exists for today"})
			return
		}
		slog.Error("error appending submission", slog.String("domain", domain), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Submission saved successfully"})
}

func (h *HttpEndpoints) approveMailSubmissions(c *gin.Context) {
	yearMonth := c.Param("yearMonth")
	date := c.Param("date")
	if err := checkDateInMonth(yearMonth, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	h.approveSubmissions(c, submissionDB.DOMAIN_FACEBOOK, date, "mail")
}

func (h *HttpEndpoints) approveInstaSubmissions(c *gin.Context) {
	date := c.Param("date")
	if _, err := submissionDB.YearMonthOf(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	h.approveSubmissions(c, submissionDB.DOMAIN_INSTAGRAM, date, "uid")
}

func (h *HttpEndpoints) approveSubmissions(c *gin.Context, domain string, date string, matchField string) {
	var values []string
	if err := c.ShouldBindJSON(&values); err != nil || len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A non-empty array of values is required"})
		return
	}

	count, err := h.submissionDBConn.MarkApproved(domain, date, matchField, values)
	if err != nil {
		if errors.Is(err, submissionDB.ErrBucketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No submissions for this day"})
			return
		}
		slog.Error("error approving submissions", slog.String("domain", domain), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	slog.Info("submissions approved", slog.String("domain", domain), slog.String("date", date), slog.Int64("count", count))
	c.JSON(http.StatusOK, gin.H{"message": "Submissions approved", "approvedCount": count})
}

func (h *HttpEndpoints) deleteInstaSubmissions(c *gin.Context) {
	date := c.Param("date")
	if _, err := submissionDB.YearMonthOf(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var values []string
	if err := c.ShouldBindJSON(&values); err != nil || len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A non-empty array of values is required"})
		return
	}

	if err := h.submissionDBConn.DeleteSubmissions(submissionDB.DOMAIN_INSTAGRAM, date, "uid", values); err != nil {
		if errors.Is(err, submissionDB.ErrBucketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No submissions for this day"})
			return
		}
		slog.Error("error deleting submissions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	slog.Info("submissions deleted", slog.String("date", date), slog.Int("values", len(values)))
	c.JSON(http.StatusOK, gin.H{"message": "Submissions deleted"})
}
