// internal/output/excel.go
package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/valpere/SellerScrapexter/internal/scraper"
)

// ExcelWriter writes rows to an .xlsx workbook with a bold, frozen header
// row.
type ExcelWriter struct {
	filename string
	file     *excelize.File
	sheet    string
}

// NewExcelWriter creates a new Excel writer.
func NewExcelWriter(filename string) (*ExcelWriter, error) {
	file := excelize.NewFile()
	sheet := DefaultSheet

	index, err := file.NewSheet(sheet)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	return &ExcelWriter{
		filename: filename,
		file:     file,
		sheet:    sheet,
	}, nil
}

// Write writes the header and all rows, then saves the workbook.
func (w *ExcelWriter) Write(rows []scraper.Row) error {
	if err := w.writeHeader(); err != nil {
		return err
	}

	for i, row := range rows {
		for col, value := range row.Values() {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := w.file.SetCellValue(w.sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	return w.file.SaveAs(w.filename)
}

func (w *ExcelWriter) writeHeader() error {
	style, err := w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	columns := scraper.RowColumns()
	for col, header := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := w.file.SetCellValue(w.sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header cell %s: %w", cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := w.file.SetCellStyle(w.sheet, "A1", last, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	return w.file.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// Close closes the workbook.
func (w *ExcelWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
