package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vandank/CanvasAutomateQuiz/internal/classify"
	"github.com/vandank/CanvasAutomateQuiz/internal/model"
)

var workbookSheets = []struct {
	name   string
	bucket model.Bucket
}{
	{"On Time", model.BucketOnTime},
	{"Late", model.BucketLate},
	{"Not Attempted", model.BucketNotAttempted},
}

// WriteWorkbook renders the classification as an xlsx workbook, one sheet
// per bucket, for instructors who review in a spreadsheet instead of the
// text reports.
func WriteWorkbook(path string, result *classify.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range workbookSheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
			}
		}

		header := []any{"Student ID", "Name", "Login", "Score", "Finished At", "Status"}
		if err := setRow(f, sheet.name, 1, header); err != nil {
			return err
		}

		rowNum := 2
		for _, s := range result.Students {
			if s.Bucket != sheet.bucket {
				continue
			}
			status := string(s.Bucket)
			if s.InProgress {
				status = "in progress"
			}
			row := []any{s.UserID, s.Name, s.LoginID, formatScore(s.Score), deref(s.FinishedAt), status}
			if err := setRow(f, sheet.name, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to set row %d on sheet %s: %w", row, sheet, err)
	}
	return nil
}
