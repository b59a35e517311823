// Package ticket loads Jira and Zendesk support-ticket exports in their
// common interchange formats (PDF, Excel, XML, Word, plain text) and
// normalizes them into a single Ticket record.
package ticket

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source identifies the ticketing system an export came from.
type Source string

const (
	SourceJira    Source = "jira"
	SourceZendesk Source = "zendesk"
)

// Ticket is the normalized view of a parsed export. Raw holds the full
// extracted text so downstream keyword classification can see everything
// the export contained.
type Ticket struct {
	Source      Source   `json:"source"`
	FilePath    string   `json:"file_path"`
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Priority    string   `json:"priority,omitempty"`
	Severity    string   `json:"severity,omitempty"`
	Status      string   `json:"status,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Requester   string   `json:"requester,omitempty"`
	Customer    string   `json:"customer,omitempty"`
	SupportTier string   `json:"support_tier,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	RCA         string   `json:"rca,omitempty"`
	Raw         string   `json:"-"`
	Hash        string   `json:"hash"`
}

// Load reads a ticket export, routing on file extension, and returns the
// normalized ticket. The hash covers the original file bytes.
func Load(path string) (*Ticket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ticket.Load: %w", err)
	}

	var t *Ticket
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		t, err = parsePDF(path)
	case ".xlsx":
		t, err = parseExcel(path)
	case ".xml":
		t, err = parseXML(data)
	case ".docx":
		t, err = parseDocx(path)
	case ".txt", ".md", "":
		t, err = Parse(string(data), path)
	default:
		return nil, fmt.Errorf("ticket.Load: unsupported file format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	t.FilePath = path
	h := sha256.Sum256(data)
	t.Hash = fmt.Sprintf("sha256:%x", h)
	return t, nil
}

// Parse normalizes already-extracted export text. The path is used only for
// source detection hints (Zendesk export filenames embed the ticket ID).
func Parse(raw, path string) (*Ticket, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("ticket.Parse: export contains no text")
	}
	if detectZendesk(raw, filepath.Base(path)) {
		return parseZendeskText(raw, filepath.Base(path)), nil
	}
	return parseJiraText(raw), nil
}
