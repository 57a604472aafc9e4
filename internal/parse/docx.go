package parse

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/papergen/internal/bank"
)

// ParseDOCX extracts paragraph text from word/document.xml inside the
// .docx archive and applies the shared question heuristics.
func ParseDOCX(path string) ([]bank.Question, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer archive.Close()

	var doc io.ReadCloser
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("open docx document part: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("docx has no word/document.xml part")
	}
	defer doc.Close()

	text, err := docxParagraphText(doc)
	if err != nil {
		return nil, fmt.Errorf("read docx text: %w", err)
	}
	return questionsFromText(text), nil
}

// docxParagraphText streams the WordprocessingML, emitting the text of
// each <w:t> run and a newline at every paragraph end.
func docxParagraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
