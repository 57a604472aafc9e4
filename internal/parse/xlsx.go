package parse

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/papergen/internal/bank"
)

// ParseXLSX reads the first sheet of a spreadsheet question bank using
// the same header aliases as the CSV parser.
func ParseXLSX(path string) ([]bank.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	if idx["question"] < 0 {
		return nil, fmt.Errorf("xlsx has no question column (accepted: %v)", columnAliases["question"])
	}

	var qs []bank.Question
	for _, row := range rows[1:] {
		q := questionFromRow(row, idx)
		if q.Text == "" {
			continue
		}
		qs = append(qs, q)
	}
	return qs, nil
}
