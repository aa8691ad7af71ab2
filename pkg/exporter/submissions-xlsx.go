package exporter

import (
	"fmt"
	"io"

	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/submission"
	"github.com/xuri/excelize/v2"
)

var submissionColumns = []string{"Mail", "Pass", "UID", "2FA", "Mode", "User", "Approved", "Created At"}

// WriteSubmissionsXLSX writes the day's submissions as an xlsx workbook with
// one sheet named after the date.
func WriteSubmissionsXLSX(w io.Writer, date string, submissions []submission.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := date
	index, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, title := range submissionColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return err
		}
	}

	for row, sub := range submissions {
		values := []interface{}{
			sub.Mail,
			sub.Pass,
			sub.UID,
			sub.TwoFA,
			sub.Mode,
			sub.UserEmail,
			sub.Approved,
			sub.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// SubmissionsFilename returns the attachment name for the day's export.
func SubmissionsFilename(date string) string {
	return fmt.Sprintf("submissions-%s.xlsx", date)
}
