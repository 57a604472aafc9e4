package export

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"
)

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

var docxEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// WriteDOCX renders the laid-out paper as a minimal WordprocessingML
// package: one document part, one paragraph per line.
func WriteDOCX(path string, p Paper) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := []struct {
		name, content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", docxDocument(p)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("docx part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("docx part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish docx: %w", err)
	}
	return f.Close()
}

func docxDocument(p Paper) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	para := func(text string, bold bool) {
		b.WriteString("<w:p><w:r>")
		if bold {
			b.WriteString("<w:rPr><w:b/></w:rPr>")
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(docxEscaper.Replace(text))
		b.WriteString("</w:t></w:r></w:p>")
	}

	para(p.Layout.Title, true)
	if p.Layout.Subject != "" {
		para(p.Layout.Subject, false)
	}
	meta := fmt.Sprintf("Maximum Marks: %d", p.TotalMarks)
	if p.Layout.DurationMinutes > 0 {
		meta = fmt.Sprintf("Duration: %d minutes    %s", p.Layout.DurationMinutes, meta)
	}
	para(meta, false)
	for _, ins := range p.Layout.Instructions {
		para("- "+ins, false)
	}

	number := 0
	for _, sec := range p.Sections {
		para(fmt.Sprintf("%s (%d x %d marks)", sec.Name, len(sec.Groups), sec.MarksEach), true)
		if sec.Instruction != "" {
			para(sec.Instruction, false)
		}
		for _, g := range sec.Groups {
			number++
			if len(g) == 1 {
				para(fmt.Sprintf("%d. %s", number, g[0].Text), false)
				continue
			}
			for i, q := range g {
				if i > 0 {
					para("    OR", false)
				}
				para(fmt.Sprintf("%d. (%c) %s", number, rune('a'+i), q.Text), false)
			}
		}
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}
