package ticket

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// columnAliases maps normalized ticket fields to the Jira Excel column
// headers that may carry them, in preference order. Matching is
// case-insensitive substring, the way Jira's export column names vary.
var columnAliases = map[string][]string{
	"id":          {"Issue key", "Key", "Jira"},
	"summary":     {"Summary", "Title"},
	"description": {"Description"},
	"priority":    {"Priority"},
	"severity":    {"Severity", "Custom field (Severity)"},
	"status":      {"Status"},
	"assignee":    {"Assignee"},
	"labels":      {"Labels"},
	"rca":         {"RCA", "Custom field (RCA)", "Root Cause Analysis"},
	"customer":    {"Customer", "Account", "Organization"},
}

// parseExcel loads a single-ticket Jira Excel export. Multi-row exports are
// refused here; the batch command handles those.
func parseExcel(path string) (*Ticket, error) {
	header, rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("ticket.parseExcel: export has no data rows")
	}
	if len(rows) > 1 {
		return nil, fmt.Errorf("ticket.parseExcel: export has %d rows; use the batch command for multi-ticket exports", len(rows))
	}
	return FromRow(header, rows[0]), nil
}

// ReadRows returns the header row and data rows of the first sheet.
func ReadRows(path string) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ticket.ReadRows: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("ticket.ReadRows: workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("ticket.ReadRows: read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("ticket.ReadRows: sheet %q is empty", sheets[0])
	}
	return all[0], all[1:], nil
}

// FromRow normalizes one Excel row into a Ticket using the column aliases.
func FromRow(header, row []string) *Ticket {
	get := func(field string) string {
		for _, alias := range columnAliases[field] {
			for i, col := range header {
				if i < len(row) && strings.Contains(strings.ToLower(col), strings.ToLower(alias)) {
					if v := strings.TrimSpace(row[i]); v != "" {
						return v
					}
				}
			}
		}
		return ""
	}

	t := &Ticket{
		Source:      SourceJira,
		ID:          get("id"),
		Summary:     get("summary"),
		Description: get("description"),
		Priority:    get("priority"),
		Severity:    get("severity"),
		Status:      get("status"),
		Assignee:    get("assignee"),
		RCA:         get("rca"),
		Customer:    get("customer"),
	}
	if labels := get("labels"); labels != "" {
		for _, l := range strings.Split(labels, ",") {
			if l = strings.TrimSpace(l); l != "" {
				t.Labels = append(t.Labels, l)
			}
		}
	}
	t.Raw = t.Summary + "\n" + t.Description
	return t
}
