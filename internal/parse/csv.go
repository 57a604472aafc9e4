package parse

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/abhisek/papergen/internal/bank"
)

// ParseCSV reads a header-first CSV question bank. Column names are
// matched against the shared aliases; unknown columns are ignored.
func ParseCSV(path string) ([]bank.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := headerIndex(rows[0])
	if idx["question"] < 0 {
		return nil, fmt.Errorf("csv has no question column (accepted: %v)", columnAliases["question"])
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
