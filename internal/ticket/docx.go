package ticket

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// parseDocx extracts paragraph text from a Word export. A .docx file is a
// zip archive whose body lives in word/document.xml; text runs sit in w:t
// elements and paragraphs end at w:p. The recovered text then goes through
// the same Jira field extraction as a PDF export.
func parseDocx(path string) (*Ticket, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("ticket.parseDocx: %w", err)
	}
	defer zr.Close()

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return nil, fmt.Errorf("ticket.parseDocx: open document.xml: %w", err)
			}
			break
		}
	}
	if doc == nil {
		return nil, fmt.Errorf("ticket.parseDocx: word/document.xml not found in archive")
	}
	defer doc.Close()

	text, err := docxText(doc)
	if err != nil {
		return nil, err
	}
	return Parse(text, path)
}

func docxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var b strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("ticket.docxText: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}
	return b.String(), nil
}
