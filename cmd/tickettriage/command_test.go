package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jalvord/tickettriage/internal/jira"
	"github.com/jalvord/tickettriage/internal/llm"
	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

const jiraExport = `[RED-174782] Shard migration stuck after failover Created: 01/Mar/26 Updated: 02/Mar/26
Project: RED
Issue Type: Bug
Priority: High
Status: Open
Assignee: Dana Ortiz
Labels: replication, failover
Customer: Globex
Description: After a planned failover the shard migration never completes.
The whole cluster is down and production traffic fails. No workaround exists.
Resolution: Unresolved
`

func writeTempExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr, got %T: %v", err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// --- score ---

func baseScoreFlags() *scoreFlags {
	return &scoreFlags{
		impactSeverity: 38, customerARR: 15, slaBreach: 8,
		frequency: 16, workaround: 15, rcaActionItem: 8,
		blocking: 1.0, risk: 1.0, format: "text",
	}
}

func TestRunScoreText(t *testing.T) {
	f := baseScoreFlags()
	f.out = filepath.Join(t.TempDir(), "out.txt")
	assertExitCode(t, runScore(f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Total: 100 (CRITICAL)") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRunScoreJSON(t *testing.T) {
	f := baseScoreFlags()
	f.format = "json"
	f.blocking = 1.5
	f.risk = 2.0
	f.out = filepath.Join(t.TempDir(), "out.json")
	assertExitCode(t, runScore(f), 0)

	var b score.Breakdown
	if err := json.Unmarshal([]byte(readFile(t, f.out)), &b); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if b.Total != 300 {
		t.Errorf("total = %d, want 300", b.Total)
	}
}

func TestRunScoreInvalidValue(t *testing.T) {
	f := baseScoreFlags()
	f.impactSeverity = 37
	assertExitCode(t, runScore(f), 3)
}

func TestRunScoreMultiplierOutOfRange(t *testing.T) {
	f := baseScoreFlags()
	f.risk = 2.5
	assertExitCode(t, runScore(f), 3)
}

func TestRunScoreUnknownFormat(t *testing.T) {
	f := baseScoreFlags()
	f.format = "yaml"
	assertExitCode(t, runScore(f), 3)
}

// --- estimate ---

func TestRunEstimate(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := &estimateFlags{
		profileName: "default", blocking: 1.0, risk: 1.0,
		format: "text", out: filepath.Join(t.TempDir(), "out.txt"),
	}
	assertExitCode(t, runEstimate(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Impact & Severity:") || !strings.Contains(out, "Total:") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRunEstimateMissingExport(t *testing.T) {
	f := &estimateFlags{profileName: "default", blocking: 1.0, risk: 1.0, format: "text"}
	assertExitCode(t, runEstimate(filepath.Join(t.TempDir(), "nope.txt"), f), 3)
}

func TestRunEstimateUnknownProfile(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := &estimateFlags{profileName: "nonexistent", blocking: 1.0, risk: 1.0, format: "text"}
	assertExitCode(t, runEstimate(path, f), 3)
}

// --- ticket ---

func baseTicketFlags(t *testing.T) *ticketFlags {
	return &ticketFlags{
		format: "md", project: jira.DefaultProject, profileName: "default",
		maxTokens: 8192, temperature: 0.2, blocking: 1.0, risk: 1.0,
		redactEnabled: true, out: filepath.Join(t.TempDir(), "ticket.md"),
	}
}

const mockResponse = `SUMMARY: Globex - shard migration deadlock after failover causing full outage

DESCRIPTION:
## Problem Statement
A planned failover leaves shard migration deadlocked and the cluster down.
`

func TestRunTicketWithProvider(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	mock := &llm.MockProvider{Response: mockResponse}
	f.provider = mock

	assertExitCode(t, runTicket(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Globex - shard migration deadlock after failover causing full outage") {
		t.Errorf("analysis summary not used:\n%s", out)
	}
	if !strings.Contains(out, "# JIRA BUG TICKET - READY FOR SUBMISSION") {
		t.Errorf("missing document header:\n%s", out)
	}
	if len(mock.Prompts) != 1 || !strings.Contains(mock.Prompts[0], "RED-174782") {
		t.Errorf("prompt not built from ticket: %d prompts", len(mock.Prompts))
	}
}

// tableResponse follows the analysis prompt's output format, including the
// Customer Context table and a horizontal rule inside the description.
const tableResponse = `SUMMARY: Globex - failover deadlock in shard migration causing full outage

DESCRIPTION:
## Customer Context
| Field | Value |
|-------|-------|
| Customer | Globex |

## Problem Statement
Shard migration deadlocks after failover.

---

## Impact
- Cluster unavailable
`

func TestRunTicketWithProviderTableResponse(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.provider = &llm.MockProvider{Response: tableResponse}

	assertExitCode(t, runTicket(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "failover deadlock in shard migration") {
		t.Errorf("table-bearing analysis rejected:\n%s", out)
	}
	if !strings.Contains(out, "| Customer | Globex |") {
		t.Errorf("customer context table lost:\n%s", out)
	}
}

func TestRunTicketFromResponseWithTable(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	respPath := filepath.Join(t.TempDir(), "response.txt")
	if err := os.WriteFile(respPath, []byte(tableResponse), 0644); err != nil {
		t.Fatal(err)
	}

	f := baseTicketFlags(t)
	f.fromResponse = respPath
	assertExitCode(t, runTicket(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "| Customer | Globex |") {
		t.Errorf("customer context table lost:\n%s", out)
	}
}

func TestRunTicketOffline(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.offline = true

	assertExitCode(t, runTicket(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Shard migration stuck after failover") {
		t.Errorf("original summary not kept offline:\n%s", out)
	}
}

func TestRunTicketJSON(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.offline = true
	f.format = "json"

	assertExitCode(t, runTicket(path, f), 0)

	var td jira.TicketData
	if err := json.Unmarshal([]byte(readFile(t, f.out)), &td); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if td.Project != jira.DefaultProject || td.IssueType != "Bug" {
		t.Errorf("ticket = %+v", td)
	}
	if td.Breakdown == nil {
		t.Error("breakdown missing from JSON output")
	}
}

func TestRunTicketMissingExport(t *testing.T) {
	f := baseTicketFlags(t)
	assertExitCode(t, runTicket(filepath.Join(t.TempDir(), "nope.txt"), f), 3)
}

func TestRunTicketProviderUnparsableResponse(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.provider = &llm.MockProvider{Response: "no structure at all"}
	assertExitCode(t, runTicket(path, f), 5)
}

func TestRunTicketProviderError(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.provider = &llm.MockProvider{Err: errors.New("rate limited")}
	assertExitCode(t, runTicket(path, f), 4)
}

func TestRunTicketFailBelow(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.offline = true
	f.failBelow = 101 // above the unmultiplied maximum
	assertExitCode(t, runTicket(path, f), 2)
}

func TestRunTicketPromptOut(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.promptOut = filepath.Join(t.TempDir(), "prompt.txt")
	f.out = ""

	assertExitCode(t, runTicket(path, f), 0)

	promptText := readFile(t, f.promptOut)
	if !strings.Contains(promptText, "RED-174782") {
		t.Errorf("prompt missing ticket ID:\n%s", promptText)
	}
	tpl := readFile(t, f.promptOut+".response")
	if !strings.Contains(tpl, "SUMMARY:") {
		t.Errorf("response template malformed:\n%s", tpl)
	}
}

func TestRunTicketFromResponse(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	respPath := filepath.Join(t.TempDir(), "response.txt")
	if err := os.WriteFile(respPath, []byte(mockResponse), 0644); err != nil {
		t.Fatal(err)
	}

	f := baseTicketFlags(t)
	f.fromResponse = respPath

	assertExitCode(t, runTicket(path, f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "shard migration deadlock") {
		t.Errorf("pasted analysis not used:\n%s", out)
	}
}

func TestRunTicketFromResponseUnparsable(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	respPath := filepath.Join(t.TempDir(), "response.txt")
	if err := os.WriteFile(respPath, []byte("freeform notes"), 0644); err != nil {
		t.Fatal(err)
	}

	f := baseTicketFlags(t)
	f.fromResponse = respPath
	assertExitCode(t, runTicket(path, f), 5)
}

func TestRunTicketUnknownFormat(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := baseTicketFlags(t)
	f.offline = true
	f.format = "yaml"
	assertExitCode(t, runTicket(path, f), 3)
}

// --- rca ---

func TestRunRCA(t *testing.T) {
	f := &rcaFlags{
		customer: "Acme Corp", date: "03/15/26",
		zendeskTickets: []string{"149320"},
		format:         "md", out: filepath.Join(t.TempDir(), "rca.md"),
	}
	assertExitCode(t, runRCA(f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Acme Corp - RCA 03/15/26") {
		t.Errorf("output:\n%s", out)
	}
	if !strings.Contains(out, "#prod-031526-acmecorp") {
		t.Errorf("slack channel missing:\n%s", out)
	}
}

func TestRunRCAWithBugExport(t *testing.T) {
	bugPath := writeTempExport(t, jiraExport)
	f := &rcaFlags{
		customer: "Globex", date: "03/15/26", bugExport: bugPath,
		format: "md", out: filepath.Join(t.TempDir(), "rca.md"),
	}
	assertExitCode(t, runRCA(f), 0)

	out := readFile(t, f.out)
	if !strings.Contains(out, "Shard migration stuck after failover") {
		t.Errorf("bug summary not seeded:\n%s", out)
	}
}

func TestRunRCADefaultsDateToToday(t *testing.T) {
	f := &rcaFlags{customer: "Globex", format: "json", out: filepath.Join(t.TempDir(), "rca.json")}
	assertExitCode(t, runRCA(f), 0)

	var td jira.TicketData
	if err := json.Unmarshal([]byte(readFile(t, f.out)), &td); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !strings.HasPrefix(td.Summary, "Globex - RCA ") {
		t.Errorf("summary = %q", td.Summary)
	}
}

func TestRunRCAMissingBugExport(t *testing.T) {
	f := &rcaFlags{
		customer: "Globex", date: "03/15/26",
		bugExport: filepath.Join(t.TempDir(), "nope.txt"), format: "md",
	}
	assertExitCode(t, runRCA(f), 3)
}

// --- parse ---

func TestRunParse(t *testing.T) {
	path := writeTempExport(t, jiraExport)
	f := &parseFlags{out: filepath.Join(t.TempDir(), "ticket.json")}
	assertExitCode(t, runParse(path, f), 0)

	var tk ticket.Ticket
	if err := json.Unmarshal([]byte(readFile(t, f.out)), &tk); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if tk.ID != "RED-174782" || tk.Source != ticket.SourceJira {
		t.Errorf("ticket = %+v", tk)
	}
}

func TestRunParseMissingExport(t *testing.T) {
	f := &parseFlags{}
	assertExitCode(t, runParse(filepath.Join(t.TempDir(), "nope.txt"), f), 3)
}
