package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/ticket"
)

// writeExport creates a small Jira-style Excel export for tests.
func writeExport(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	header := []string{"Issue key", "Summary", "Description", "Priority"}
	for col, v := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("set header: %v", err)
		}
	}
	for r, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save export: %v", err)
	}
	return path
}

func loadProfile(t *testing.T) *classify.Profile {
	t.Helper()
	p, err := classify.LoadBuiltin("default")
	if err != nil {
		t.Fatalf("LoadBuiltin() error = %v", err)
	}
	return p
}

func TestRun(t *testing.T) {
	path := writeExport(t, [][]string{
		{"RED-1", "Cluster down, production outage", "Complete outage, all nodes unreachable. No workaround exists.", "Urgent"},
		{"RED-2", "Dashboard typo", "Cosmetic label misspelling on the metrics page.", "Low"},
		{"", "", "", ""},
	})

	report, err := Run(context.Background(), path, loadProfile(t), 2)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Rows != 3 {
		t.Fatalf("rows = %d, want 3", report.Rows)
	}
	if report.Scored != 2 || report.Failed != 1 {
		t.Fatalf("scored/failed = %d/%d, want 2/1", report.Scored, report.Failed)
	}

	// Results stay in input order regardless of scheduling.
	if report.Results[0].TicketID != "RED-1" || report.Results[1].TicketID != "RED-2" {
		t.Errorf("result order = %q, %q", report.Results[0].TicketID, report.Results[1].TicketID)
	}
	if report.Results[0].Row != 1 || report.Results[2].Row != 3 {
		t.Errorf("row numbers = %d, %d", report.Results[0].Row, report.Results[2].Row)
	}

	sev := report.Results[0]
	if sev.Breakdown == nil {
		t.Fatal("severe row has no breakdown")
	}
	minor := report.Results[1]
	if minor.Breakdown == nil {
		t.Fatal("minor row has no breakdown")
	}
	if sev.Breakdown.Total <= minor.Breakdown.Total {
		t.Errorf("severe total %d not above minor total %d", sev.Breakdown.Total, minor.Breakdown.Total)
	}

	empty := report.Results[2]
	if empty.Err == "" || empty.Breakdown != nil {
		t.Errorf("empty row not flagged: %+v", empty)
	}
}

func TestRunDefaultWorkers(t *testing.T) {
	path := writeExport(t, [][]string{
		{"RED-1", "Replica lag", "Replicas lag behind the primary.", "Medium"},
	})
	report, err := Run(context.Background(), path, loadProfile(t), 0)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Scored != 1 {
		t.Fatalf("scored = %d", report.Scored)
	}
}

func TestRunEmptyExport(t *testing.T) {
	path := writeExport(t, nil)
	if _, err := Run(context.Background(), path, loadProfile(t), 1); err == nil {
		t.Error("expected error for export with no data rows")
	}
}

func TestRunCanceled(t *testing.T) {
	path := writeExport(t, [][]string{
		{"RED-1", "Replica lag", "Replicas lag behind the primary.", "Medium"},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, path, loadProfile(t), 1); err == nil {
		t.Error("expected error from canceled context")
	}
}

func TestWriteJSON(t *testing.T) {
	path := writeExport(t, [][]string{
		{"RED-1", "Cluster down", "Complete outage, no workaround.", "Urgent"},
	})
	report, err := Run(context.Background(), path, loadProfile(t), 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "report.json")
	if err := WriteJSON(report, out); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var back Report
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if back.Scored != 1 || len(back.Results) != 1 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestWriteXLSX(t *testing.T) {
	path := writeExport(t, [][]string{
		{"RED-1", "Cluster down", "Complete outage, no workaround.", "Urgent"},
		{"", "", "", ""},
	})
	report, err := Run(context.Background(), path, loadProfile(t), 1)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := filepath.Join(t.TempDir(), "scored.xlsx")
	if err := WriteXLSX(report, path, out); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	header, rows, err := ticket.ReadRows(out)
	if err != nil {
		t.Fatalf("ReadRows(report) error = %v", err)
	}
	if header[len(header)-3] != "Impact Score" || header[len(header)-1] != "Error" {
		t.Errorf("appended headers = %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	scoreCol := len(header) - 3
	if rows[0][scoreCol] == "" {
		t.Errorf("scored row missing impact score: %v", rows[0])
	}
	if rows[1][len(header)-1] == "" {
		t.Errorf("failed row missing error: %v", rows[1])
	}
}
