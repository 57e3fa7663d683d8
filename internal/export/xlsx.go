package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hied-data/deitrack/pkg/models"
)

const sheetName = "DEI Data"

// SaveXLSX writes records to a single-sheet workbook with a header row
// and auto-sized columns.
func SaveXLSX(records []models.Record, filepath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	header := make([]interface{}, len(models.FieldNames))
	for i, name := range models.FieldNames {
		header[i] = name
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		row := rec.Row()
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := autoSizeColumns(f, records); err != nil {
		return err
	}

	return f.SaveAs(filepath)
}

// autoSizeColumns widens each column to its longest value, capped so a
// long detail text does not blow up the sheet.
func autoSizeColumns(f *excelize.File, records []models.Record) error {
	for col, name := range models.FieldNames {
		maxLen := len(name)
		for _, rec := range records {
			if l := len(rec.Row()[col]); l > maxLen {
				maxLen = l
			}
		}
		width := float64(maxLen + 2)
		if width > 50 {
			width = 50
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return err
		}
	}
	return nil
}
