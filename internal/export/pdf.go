package export

import (
	"fmt"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the laid-out paper to a single PDF document.
func WritePDF(path string, p Paper) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(p.Layout.Title, true)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 9, p.Layout.Title, "", "C", false)
	if p.Layout.Subject != "" {
		doc.SetFont("Helvetica", "", 12)
		doc.MultiCell(0, 7, p.Layout.Subject, "", "C", false)
	}

	doc.SetFont("Helvetica", "", 10)
	meta := fmt.Sprintf("Maximum Marks: %d", p.TotalMarks)
	if p.Layout.DurationMinutes > 0 {
		meta = fmt.Sprintf("Duration: %d minutes    %s", p.Layout.DurationMinutes, meta)
	}
	doc.MultiCell(0, 6, meta, "", "C", false)
	doc.Ln(2)

	if len(p.Layout.Instructions) > 0 {
		doc.SetFont("Helvetica", "I", 10)
		for _, ins := range p.Layout.Instructions {
			doc.MultiCell(0, 5, "- "+ins, "", "L", false)
		}
		doc.Ln(2)
	}

	number := 0
	for _, sec := range p.Sections {
		doc.SetFont("Helvetica", "B", 13)
		doc.MultiCell(0, 8, fmt.Sprintf("%s (%d x %d marks)", sec.Name, len(sec.Groups), sec.MarksEach), "", "L", false)
		if sec.Instruction != "" {
			doc.SetFont("Helvetica", "I", 10)
			doc.MultiCell(0, 5, sec.Instruction, "", "L", false)
		}
		doc.Ln(1)

		doc.SetFont("Helvetica", "", 11)
		for _, g := range sec.Groups {
			number++
			if len(g) == 1 {
				doc.MultiCell(0, 6, fmt.Sprintf("%d. %s", number, g[0].Text), "", "L", false)
			} else {
				for i, q := range g {
					if i > 0 {
						doc.MultiCell(0, 6, "    OR", "", "L", false)
					}
					doc.MultiCell(0, 6, fmt.Sprintf("%d. (%c) %s", number, rune('a'+i), q.Text), "", "L", false)
				}
			}
			doc.Ln(1)
		}
		doc.Ln(2)
	}

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
