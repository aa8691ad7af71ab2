package apihandlers

import (
	"errors"
	"strings"
	"time"

	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

// checkDateInMonth verifies that date is a valid calendar day inside
// the given yyyy-mm partition.
func checkDateInMonth(yearMonth string, date string) error {
	ym, err := submissionDB.YearMonthOf(date)
	if err != nil {
		return err
	}
	if ym != yearMonth {
		return errors.New("date does not belong to the given month")
	}
	return nil
}

// defaultDateRange fills missing from/to values with the last 30 days
// ending today.
func defaultDateRange(from string, to string) (string, string) {
	now := time.Now()
	if to == "" {
		to = now.Format("2006-01-02")
	}
	if from == "" {
		from = now.AddDate(0, 0, -30).Format("2006-01-02")
	}
	return from, to
}

type FacebookDailyRow struct {
	Date             string `json:"date"`
	Complete         int    `json:"complete"`
	Quick            int    `json:"quick"`
	ApprovedComplete int    `json:"approvedComplete"`
	ApprovedQuick    int    `json:"approvedQuick"`
}

func facebookRows(counts []submissionDB.DailyCounts) []FacebookDailyRow {
	rows := make([]FacebookDailyRow, 0, len(counts))
	for _, dc := range counts {
		rows = append(rows, FacebookDailyRow{
			Date:             dc.Date,
			Complete:         dc.Total[submissionDB.MODE_COMPLETE],
			Quick:            dc.Total[submissionDB.MODE_QUICK],
			ApprovedComplete: dc.Approved[submissionDB.MODE_COMPLETE],
			ApprovedQuick:    dc.Approved[submissionDB.MODE_QUICK],
		})
	}
	return rows
}

type InstagramDailyRow struct {
	Date     string `json:"date"`
	Total    int    `json:"total"`
	Approved int    `json:"approved"`
}

func instagramRows(counts []submissionDB.DailyCounts) []InstagramDailyRow {
	rows := make([]InstagramDailyRow, 0, len(counts))
	for _, dc := range counts {
		total := 0
		for _, n := range dc.Total {
			total += n
		}
		approved := 0
		for _, n := range dc.Approved {
			approved += n
		}
		rows = append(rows, InstagramDailyRow{Date: dc.Date, Total: total, Approved: approved})
	}
	return rows
}

func sanitizeFilenamePart(v string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, v)
}
