package submission

import (
	"errors"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrInvalidDate = errors.New("invalid date, expected format 2006-01-02")

// YearMonthOf returns the month partition key (2006-01) of a day date.
func YearMonthOf(date string) (string, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", ErrInvalidDate
	}
	return date[:7], nil
}

// MonthsInRange lists the month partition keys a date range spans, inclusive.
func MonthsInRange(from string, to string) ([]string, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrInvalidDate
	}

	months := []string{}
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		months = append(months, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return months, nil
}

type ModeCount struct {
	Date  string
	Mode  string
	Count int
}

// DailyCounts is one report row: per-mode totals and approved counts of a day.
type DailyCounts struct {
	Date     string         `json:"date"`
	Total    map[string]int `json:"total"`
	Approved map[string]int `json:"approved"`
}

// DailyReport aggregates submissions of the date range grouped by (date, mode),
// counting all submissions in one pass and approved ones in a second, and
// merges the two series.
func (dbService *SubmissionDBService) DailyReport(domain string, from string, to string) ([]DailyCounts, error) {
	months, err := MonthsInRange(from, to)
	if err != nil {
		return nil, err
	}

	totals := []ModeCount{}
	approved := []ModeCount{}
	for _, yearMonth := range months {
		t, err := dbService.countByDateAndMode(domain, yearMonth, from, to, false)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t...)

		a, err := dbService.countByDateAndMode(domain, yearMonth, from, to, true)
		if err != nil {
			return nil, err
		}
		approved = append(approved, a...)
	}

	return MergeDailyCounts(totals, approved), nil
}

func (dbService *SubmissionDBService) countByDateAndMode(domain string, yearMonth string, from string, to string, onlyApproved bool) ([]ModeCount, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	match := bson.M{
		"date": bson.M{"$gte": from, "$lte": to},
	}
	if onlyApproved {
		match["submissions.approved"] = true
	}

	pipeline := []bson.M{
		{"$unwind": "$submissions"},
		{"$match": match},
		{"$group": bson.M{
			"_id": bson.M{
				"date": "$date",
				"mode": "$submissions.mode",
			},
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := dbService.collectionSubmissions(domain, yearMonth).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		ID struct {
			Date string `bson:"date"`
			Mode string `bson:"mode"`
		} `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	counts := make([]ModeCount, len(results))
	for i, r := range results {
		counts[i] = ModeCount{Date: r.ID.Date, Mode: r.ID.Mode, Count: r.Count}
	}
	return counts, nil
}

// MergeDailyCounts joins the totals series with the approved series by date.
// Dates present in only one series still yield a row, missing counts default
// to zero. Rows are sorted ascending by date.
func MergeDailyCounts(totals []ModeCount, approved []ModeCount) []DailyCounts {
	rows := map[string]*DailyCounts{}

	rowFor := func(date string) *DailyCounts {
		row, ok := rows[date]
		if !ok {
			row = &DailyCounts{
				Date:     date,
				Total:    map[string]int{},
				Approved: map[string]int{},
			}
			rows[date] = row
		}
		return row
	}

	for _, c := range totals {
		rowFor(c.Date).Total[c.Mode] += c.Count
	}
	for _, c := range approved {
		rowFor(c.Date).Approved[c.Mode] += c.Count
	}

	merged := make([]DailyCounts, 0, len(rows))
	for _, row := range rows {
		merged = append(merged, *row)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})
	return merged
}
