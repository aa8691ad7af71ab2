package submission

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestYearMonthOf(t *testing.T) {
	ym, err := YearMonthOf("2025-03-14")
	if err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	if ym != "2025-03" {
		t.Errorf("unexpected year month: %s", ym)
	}

	if _, err := YearMonthOf("14-03-2025"); err == nil {
		t.Error("should fail for wrong format")
	}
	if _, err := YearMonthOf("2025-03"); err == nil {
		t.Error("should fail for missing day")
	}
}

func TestMonthsInRange(t *testing.T) {
	t.Run("within one month", func(t *testing.T) {
		months, err := MonthsInRange("2025-03-01", "2025-03-31")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(months) != 1 || months[0] != "2025-03" {
			t.Errorf("unexpected months: %v", months)
		}
	})

	t.Run("across a year boundary", func(t *testing.T) {
		months, err := MonthsInRange("2024-11-20", "2025-01-05")
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		expected := []string{"2024-11", "2024-12", "2025-01"}
		if len(months) != len(expected) {
			t.Fatalf("unexpected months: %v", months)
		}
		for i, m := range expected {
			if months[i] != m {
				t.Errorf("expected %s at %d, got %s", m, i, months[i])
			}
		}
	})

	t.Run("with invalid input", func(t *testing.T) {
		if _, err := MonthsInRange("2025-03", "2025-04-01"); err == nil {
			t.Error("should fail for invalid from date")
		}
	})
}

func TestMergeDailyCounts(t *testing.T) {
	totals := []ModeCount{
		{Date: "2025-03-02", Mode: MODE_QUICK, Count: 1},
		{Date: "2025-03-01", Mode: MODE_QUICK, Count: 1},
		{Date: "2025-03-01", Mode: MODE_COMPLETE, Count: 1},
	}
	approved := []ModeCount{
		{Date: "2025-03-01", Mode: MODE_COMPLETE, Count: 1},
		{Date: "2025-03-02", Mode: MODE_QUICK, Count: 1},
	}

	rows := MergeDailyCounts(totals, approved)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	d1 := rows[0]
	if d1.Date != "2025-03-01" {
		t.Errorf("rows not sorted ascending, first date: %s", d1.Date)
	}
	if d1.Total[MODE_COMPLETE] != 1 || d1.Total[MODE_QUICK] != 1 {
		t.Errorf("unexpected totals for d1: %v", d1.Total)
	}
	if d1.Approved[MODE_COMPLETE] != 1 || d1.Approved[MODE_QUICK] != 0 {
		t.Errorf("unexpected approved counts for d1: %v", d1.Approved)
	}

	d2 := rows[1]
	if d2.Total[MODE_COMPLETE] != 0 || d2.Total[MODE_QUICK] != 1 {
		t.Errorf("unexpected totals for d2: %v", d2.Total)
	}
	if d2.Approved[MODE_COMPLETE] != 0 || d2.Approved[MODE_QUICK] != 1 {
		t.Errorf("unexpected approved counts for d2: %v", d2.Approved)
	}
}

func TestMergeDailyCountsWithDateInOneSeriesOnly(t *testing.T) {
	// an approval can reference a date whose totals pass returned nothing,
	// e.g. when all submissions of the day were already filtered out
	approved := []ModeCount{{Date: "2025-03-05", Mode: MODE_INSTA2FA, Count: 2}}

	rows := MergeDailyCounts(nil, approved)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Total[MODE_INSTA2FA] != 0 {
		t.Errorf("expected zero total, got %d", rows[0].Total[MODE_INSTA2FA])
	}
	if rows[0].Approved[MODE_INSTA2FA] != 2 {
		t.Errorf("expected 2 approved, got %d", rows[0].Approved[MODE_INSTA2FA])
	}
}

func TestDuplicateGuard(t *testing.T) {
	t.Run("skips empty fields", func(t *testing.T) {
		guard := duplicateGuard(Submission{TwoFA: "SECRET"})
		if guard == nil {
			t.Fatal("expected a guard")
		}
		elemMatch, ok := guard["$elemMatch"].(bson.M)
		if !ok {
			t.Fatalf("unexpected guard shape: %v", guard)
		}
		or, ok := elemMatch["$or"].([]bson.M)
		if !ok || len(or) != 1 {
			t.Fatalf("unexpected guard condition: %v", elemMatch)
		}
		if or[0]["twoFA"] != "SECRET" {
			t.Errorf("unexpected guard condition: %v", or[0])
		}
	})

	t.Run("nil without identifying fields", func(t *testing.T) {
		if guard := duplicateGuard(Submission{Mode: MODE_QUICK}); guard != nil {
			t.Errorf("expected nil guard, got %v", guard)
		}
	})
}
