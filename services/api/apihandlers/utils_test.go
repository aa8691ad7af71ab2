package apihandlers

import (
	"testing"

	submissionDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
)

func TestCheckDateInMonth(t *testing.T) {
	t.Run("with matching month", func(t *testing.T) {
		if err := checkDateInMonth("2025-07", "2025-07-14"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("with wrong month", func(t *testing.T) {
		if err := checkDateInMonth("2025-06", "2025-07-14"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("with malformed date", func(t *testing.T) {
		if err := checkDateInMonth("2025-07", "14-07-2025"); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func TestDefaultDateRange(t *testing.T) {
	t.Run("keeps explicit values", func(t *testing.T) {
		from, to := defaultDateRange("2025-01-01", "2025-01-31")
		if from != "2025-01-01" || to != "2025-01-31" {
			t.Errorf("unexpected range: %s..%s", from, to)
		}
	})

	t.Run("fills missing values", func(t *testing.T) {
		from, to := defaultDateRange("", "")
		if from == "" || to == "" {
			t.Errorf("expected defaults, got %s..%s", from, to)
		}
		if from >= to {
			t.Errorf("expected from before to, got %s..%s", from, to)
		}
	})
}

func TestFacebookRows(t *testing.T) {
	counts := []submissionDB.DailyCounts{
		{
			Date:     "2025-07-01",
			Total:    map[string]int{submissionDB.MODE_COMPLETE: 3, submissionDB.MODE_QUICK: 1},
			Approved: map[string]int{submissionDB.MODE_COMPLETE: 2},
		},
	}
	rows := facebookRows(counts)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Complete != 3 || row.Quick != 1 || row.ApprovedComplete != 2 || row.ApprovedQuick != 0 {
		t.Errorf("unexpected row: %+v", row)
	}
}

func TestInstagramRows(t *testing.T) {
	counts := []submissionDB.DailyCounts{
		{
			Date:     "2025-07-01",
			Total:    map[string]int{submissionDB.MODE_INSTA2FA: 5},
			Approved: map[string]int{submissionDB.MODE_INSTA2FA: 2},
		},
	}
	rows := instagramRows(counts)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Total != 5 || rows[0].Approved != 2 {
		t.Errorf("unexpected row: %+v", rows[0])
	}
}

func TestSanitizeFilenamePart(t *testing.T) {
	if got := sanitizeFilenamePart(`2025-07-14"; touch x`); got != "2025-07-14" {
		t.Errorf("unexpected sanitized value: %s", got)
	}
}
