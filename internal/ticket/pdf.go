package ticket

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// parsePDF extracts the full text of a PDF export and hands it to the
// source-detecting text parser. Jira and Zendesk both export tickets as
// print-to-PDF, so this is the most common input format.
func parsePDF(path string) (*Ticket, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ticket.parsePDF: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("ticket.parsePDF: extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return nil, fmt.Errorf("ticket.parsePDF: read text: %w", err)
	}

	return Parse(buf.String(), path)
}
