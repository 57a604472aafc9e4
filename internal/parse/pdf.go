package parse

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/abhisek/papergen/internal/bank"
)

// ParsePDF extracts plain text from a PDF and applies the shared
// question heuristics. Layout-heavy PDFs degrade gracefully: lines that
// don't look like question starts become continuations.
func ParsePDF(path string) ([]bank.Question, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}
	return questionsFromText(buf.String()), nil
}
