package apihandlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	mw "github.com/P2B-ARIF/facebook-info-api-backend/pkg/apihelpers/middlewares"
	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/exporter"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddReportAPI(rg *gin.RouterGroup) {
	withJWT := mw.GetAndValidateUserJWT(h.tokenSignKey)
	rg.GET("/api/table", withJWT, h.facebookTable)
	rg.GET("/api/today", withJWT, h.todaySummary)
	rg.GET("/api/instagram/table", withJWT, h.instagramTable)
	rg.GET("/api/download/:yearMonth/:date", withJWT, h.downloadDay)
}

func (h *HttpEndpoints) facebookTable(c *gin.Context) {
	counts, ok := h.dailyReport(c, submissionDB.DOMAIN_FACEBOOK)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": facebookRows(counts)})
}

func (h *HttpEndpoints) instagramTable(c *gin.Context) {
	counts, ok := h.dailyReport(c, submissionDB.DOMAIN_INSTAGRAM)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": instagramRows(counts)})
}

func (h *HttpEndpoints) dailyReport(c *gin.Context, domain string) ([]submissionDB.DailyCounts, bool) {
	from, to := defaultDateRange(c.DefaultQuery("from", ""), c.DefaultQuery("to", ""))
	counts, err := h.submissionDBConn.DailyReport(domain, from, to)
	if err != nil {
		if errors.Is(err, submissionDB.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date range"})
			return nil, false
		}
		slog.Error("error building daily report", slog.String("domain", domain), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return nil, false
	}
	return counts, true
}

func (h *HttpEndpoints) todaySummary(c *gin.Context) {
	date := today()
	counts, err := h.submissionDBConn.DailyReport(submissionDB.DOMAIN_FACEBOOK, date, date)
	if err != nil {
		slog.Error("error building today summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	rows := facebookRows(counts)
	if len(rows) == 0 {
		rows = []FacebookDailyRow{{Date: date}}
	}
	c.JSON(http.StatusOK, rows[0])
}

func (h *HttpEndpoints) downloadDay(c *gin.Context) {
	yearMonth := c.Param("yearMonth")
	date := c.Param("date")
	if err := checkDateInMonth(yearMonth, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	bucket, err := h.submissionDBConn.GetBucket(submissionDB.DOMAIN_FACEBOOK, date)
	if err != nil {
		if errors.Is(err, submissionDB.ErrBucketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No submissions for this day"})
			return
		}
		slog.Error("error fetching day bucket", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	filename := exporter.SubmissionsFilename(sanitizeFilenamePart(date))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := exporter.WriteSubmissionsXLSX(c.Writer, date, bucket.Submissions); err != nil {
		slog.Error("error writing xlsx export", slog.String("error", err.Error()))
	}
}
