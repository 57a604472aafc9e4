package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

var csvHeader = []string{"id", "question", "topic", "difficulty", "type", "keywords", "marks", "unit"}

// WriteCSV writes the flat question table, one row per question.
func WriteCSV(path string, qs []bank.Question) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, q := range qs {
		row := []string{
			q.ID,
			q.Text,
			q.Topic,
			string(q.Difficulty),
			string(q.Type),
			strings.Join(q.Keywords, ", "),
			strconv.Itoa(q.Marks),
			q.Unit,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}
