package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/papergen/internal/bank"
)

// WriteXLSX writes the flat question table to the first sheet of a new
// workbook, same columns as the CSV exporter.
func WriteXLSX(path string, qs []bank.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("xlsx header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, q := range qs {
		values := []any{
			q.ID,
			q.Text,
			q.Topic,
			string(q.Difficulty),
			string(q.Type),
			strings.Join(q.Keywords, ", "),
			q.Marks,
			q.Unit,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("xlsx cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("xlsx row %d: %w", i+2, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
