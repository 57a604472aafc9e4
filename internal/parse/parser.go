// Package parse loads question bank files. Each format parser returns
// bank.Question records with marks and IDs defaulted but label fields
// (topic/difficulty/type) left empty when the source does not provide
// them, so the classifier backfill at load time can fill the gaps.
package parse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

// UnsupportedFormatError indicates a file extension no parser handles.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported question bank format: %q", e.Ext)
}

// SupportedExtensions lists the file extensions Parse accepts.
var SupportedExtensions = []string{".csv", ".json", ".xlsx", ".txt", ".pdf", ".docx"}

// Parse reads a question bank file, dispatching on the extension.
// Missing files surface as wrapped fs.ErrNotExist; unknown extensions
// as *UnsupportedFormatError.
func Parse(path string) ([]bank.Question, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("question bank file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(path)
	case ".json":
		return ParseJSON(path)
	case ".xlsx":
		return ParseXLSX(path)
	case ".txt":
		return ParseTXT(path)
	case ".pdf":
		return ParsePDF(path)
	case ".docx":
		return ParseDOCX(path)
	}
	return nil, &UnsupportedFormatError{Ext: filepath.Ext(path)}
}

// Column aliases accepted by the tabular parsers (CSV, XLSX). The first
// alias present in the header wins.
var columnAliases = map[string][]string{
	"id":         {"id", "qid", "question_id"},
	"question":   {"question", "q", "text", "question_text"},
	"topic":      {"topic", "subject", "category", "domain"},
	"difficulty": {"difficulty", "level", "difficulty_level"},
	"type":       {"type", "question_type", "format"},
	"keywords":   {"keywords", "tags", "key_words"},
	"marks":      {"marks", "points", "weight"},
	"unit":       {"unit", "module", "chapter"},
}

// headerIndex maps each canonical field to its column position, or -1.
func headerIndex(header []string) map[string]int {
	norm := make([]string, len(header))
	for i, h := range header {
		norm[i] = strings.ToLower(strings.TrimSpace(h))
	}
	idx := map[string]int{}
	for field, aliases := range columnAliases {
		idx[field] = -1
		for _, alias := range aliases {
			for col, h := range norm {
				if h == alias {
					idx[field] = col
					break
				}
			}
			if idx[field] >= 0 {
				break
			}
		}
	}
	return idx
}

// questionFromRow builds a record from one tabular row.
func questionFromRow(row []string, idx map[string]int) bank.Question {
	cell := func(field string) string {
		col := idx[field]
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	q := bank.Question{
		ID:         cell("id"),
		Text:       cell("question"),
		Topic:      cell("topic"),
		Difficulty: bank.Difficulty(cell("difficulty")),
		Type:       bank.Type(cell("type")),
		Unit:       cell("unit"),
	}
	if kw := cell("keywords"); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				q.Keywords = append(q.Keywords, k)
			}
		}
	}
	if m := cell("marks"); m != "" {
		fmt.Sscanf(m, "%d", &q.Marks)
	}
	return q
}

// questionsFromText extracts questions from loosely structured plain
// text: a line starting a new question begins with "Q", "Question" or a
// number; continuation lines are appended to the current question.
func questionsFromText(text string) []bank.Question {
	var qs []bank.Question
	var current *bank.Question

	flush := func() {
		if current != nil && strings.TrimSpace(current.Text) != "" {
			qs = append(qs, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if startsQuestion(line) {
			flush()
			current = &bank.Question{Text: stripQuestionPrefix(line), Marks: bank.DefaultMarks}
			continue
		}
		if current != nil {
			current.Text += " " + line
		} else {
			current = &bank.Question{Text: line, Marks: bank.DefaultMarks}
		}
	}
	flush()
	return qs
}

func startsQuestion(line string) bool {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "question") {
		return true
	}
	if len(lower) >= 2 && lower[0] == 'q' && (lower[1] >= '0' && lower[1] <= '9' || lower[1] == '.' || lower[1] == ')') {
		return true
	}
	// Numbered forms: "3.", "3)", "12."
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')')
}

// stripQuestionPrefix removes a leading "Q3.", "Question 4:", "12)"
// style marker, keeping the line intact when no marker parses cleanly.
func stripQuestionPrefix(line string) string {
	rest := line
	lower := strings.ToLower(line)
	switch {
	case strings.HasPrefix(lower, "question"):
		rest = line[len("question"):]
	case len(lower) >= 2 && lower[0] == 'q':
		rest = line[1:]
	}
	rest = strings.TrimLeft(rest, " 0123456789")
	rest = strings.TrimLeft(rest, ".):-")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return line
	}
	return rest
}
