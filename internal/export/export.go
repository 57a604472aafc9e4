// Package export renders selection results to files: flat question
// tables (CSV, XLSX) and formatted question papers (PDF, DOCX).
package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/selection"
)

// Layout carries the presentation settings for a rendered paper.
type Layout struct {
	Title           string   `yaml:"title" json:"title"`
	Subject         string   `yaml:"subject" json:"subject,omitempty"`
	DurationMinutes int      `yaml:"duration_minutes" json:"duration_minutes,omitempty"`
	TotalMarks      int      `yaml:"total_marks" json:"total_marks,omitempty"`
	Instructions    []string `yaml:"instructions" json:"instructions,omitempty"`
}

// DefaultLayout returns the layout used when no config file supplies one.
func DefaultLayout() Layout {
	return Layout{
		Title:           "Question Paper",
		DurationMinutes: 180,
		Instructions: []string{
			"Answer all sections.",
			"Figures to the right indicate marks.",
		},
	}
}

// Group is one numbered slot on the paper. More than one question in a
// group means internal choice: the candidate answers exactly one.
type Group []bank.Question

// Section is a block of same-mark questions.
type Section struct {
	Name        string  `json:"name"`
	MarksEach   int     `json:"marks_each"`
	Instruction string  `json:"instruction"`
	Groups      []Group `json:"groups"`
}

// Paper is a fully laid-out question paper ready for rendering.
type Paper struct {
	Layout     Layout    `json:"layout"`
	TotalMarks int       `json:"total_marks"`
	Sections   []Section `json:"sections"`
}

// UnsupportedFormatError indicates a file extension no exporter handles.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format: %q", e.Ext)
}

// BuildPaper arranges a selection result into sections by mark value,
// ascending, named Section A, B, ... The highest-mark section is chunked
// into internal-choice groups of res.ChoiceOptions when that is set;
// every other section gets one question per slot.
func BuildPaper(res selection.Result, layout Layout) Paper {
	byMarks := map[int][]bank.Question{}
	for _, q := range res.Questions {
		byMarks[q.Marks] = append(byMarks[q.Marks], q)
	}
	values := make([]int, 0, len(byMarks))
	for m := range byMarks {
		values = append(values, m)
	}
	sort.Ints(values)

	p := Paper{Layout: layout, TotalMarks: layout.TotalMarks}
	if p.TotalMarks == 0 {
		p.TotalMarks = res.TargetMarks
	}

	for i, m := range values {
		size := 1
		if res.ChoiceOptions > 1 && i == len(values)-1 && len(values) > 0 {
			size = res.ChoiceOptions
		}
		sec := Section{
			Name:      fmt.Sprintf("Section %c", rune('A'+i)),
			MarksEach: m,
		}
		if size > 1 {
			sec.Instruction = fmt.Sprintf("Answer any one alternative from each question. Each question carries %d marks.", m)
		} else {
			sec.Instruction = fmt.Sprintf("Answer all questions. Each question carries %d marks.", m)
		}
		qs := byMarks[m]
		for start := 0; start < len(qs); start += size {
			end := start + size
			if end > len(qs) {
				end = len(qs)
			}
			sec.Groups = append(sec.Groups, Group(qs[start:end]))
		}
		p.Sections = append(p.Sections, sec)
	}

	if p.TotalMarks == 0 {
		for _, q := range res.Questions {
			p.TotalMarks += q.Marks
		}
	}
	return p
}

// Export writes a result to path, dispatching on the extension. Tabular
// formats (.csv, .xlsx) get the flat question list; document formats
// (.pdf, .docx) get the laid-out paper.
func Export(path string, res selection.Result, layout Layout) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, res.Questions)
	case ".xlsx":
		return WriteXLSX(path, res.Questions)
	case ".pdf":
		return WritePDF(path, BuildPaper(res, layout))
	case ".docx":
		return WriteDOCX(path, BuildPaper(res, layout))
	}
	return &UnsupportedFormatError{Ext: filepath.Ext(path)}
}
