// Package export renders booking reports as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/models"
	"shareit/internal/timeline"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName  = "Bookings"
	timeLayout = "2006-01-02 15:04"
)

var headers = []string{"ID", "Item", "Booker", "Email", "Start", "End", "Status", "Period"}

// BookingReport is one owner's bookings classified at a single instant.
type BookingReport struct {
	OwnerID  int64
	State    string
	Now      time.Time
	Bookings []*models.Booking
}

// FileName is the suggested download name for the report.
func (r BookingReport) FileName() string {
	return fmt.Sprintf("bookings_%d_%s_%s.xlsx", r.OwnerID, r.State, r.Now.UTC().Format("20060102_150405"))
}

// Build lays out the report on a single sheet. The caller closes the file.
func Build(r BookingReport) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	title := fmt.Sprintf("State: %s, generated %s UTC", r.State, r.Now.UTC().Format(timeLayout))
	_ = f.SetCellValue(sheetName, "A1", title)
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err := f.SetSheetRow(sheetName, "A2", &headers); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("error writing headers: %w", err)
	}
	_ = f.SetCellStyle(sheetName, "A2", lastCol+"2", headerStyle)

	for i, b := range r.Bookings {
		cell, _ := excelize.CoordinatesToCellName(1, i+3)
		row := []interface{}{
			b.ID,
			b.Item.Name,
			b.Booker.Name,
			b.Booker.Email,
			b.Start.UTC().Format(timeLayout),
			b.End.UTC().Format(timeLayout),
			b.Status,
			timeline.Bucket(b, r.Now),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("error writing booking %d: %w", b.ID, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "D", 25)
	_ = f.SetColWidth(sheetName, "E", "H", 18)

	return f, nil
}

// Write streams the report workbook to w.
func Write(w io.Writer, r BookingReport) error {
	f, err := Build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// Save stores the report under dir and returns its path.
func Save(dir string, r BookingReport) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	f, err := Build(r)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, r.FileName())
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}
	return path, nil
}
