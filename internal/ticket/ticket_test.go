package ticket

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const jiraExport = `[RED-174782] Shard migration stuck after failover Created: 01/Mar/26 Updated: 02/Mar/26
Project: RED
Issue Type: Bug
Priority: High
Status: Open
Assignee: Dana Ortiz
Reporter: Sam Keller
Labels: replication, failover
Components: cluster
Fix Versions: 7.4.3
Affects Versions: 7.4.2
Customer: Globex
Description: After a planned failover the shard migration never completes.
Errors repeat every 30 seconds in the cluster log.
Resolution: Unresolved
`

const zendeskExport = `#149320 Globex - Replication lag on CRDB after upgrade Submitted
Status: Open
Priority: High
Requester: Lee Wong
Assignee: Support Team
Organization: Globex
Tags: crdb, replication
SLA Package: Premium Enterprise TAM: yes
Problem Summary
Lee Wong March 3, 2026 at 10:15
After upgrading to 7.4 the CRDB replicas lag behind the primary.
Focus Score
Ticket Location
We see OVC mismatches in the logs every few minutes.
Analyzer Bot
bot noise line
Sara Diaz March 3, 2026 at 11:02
Thanks, collecting a support package now. No workaround so far.
1/4
Support Software by Zendesk
`

func TestDetectZendesk(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		filename string
		want     bool
	}{
		{"zendesk filename", "anything", "acme.zendesk.com_tickets_149320_print.pdf", true},
		{"zendesk url in body", "see https://acme.zendesk.com/tickets/1", "export.pdf", true},
		{"jira indicators win", jiraExport, "export.pdf", false},
		{"zendesk indicators", "Ticket # 1\nRequester: a\nSubmitted today", "export.pdf", true},
		{"plain text defaults to jira", "nothing to see", "export.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectZendesk(tt.raw, tt.filename); got != tt.want {
				t.Errorf("detectZendesk() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseJiraText(t *testing.T) {
	tk := parseJiraText(jiraExport)

	if tk.Source != SourceJira {
		t.Errorf("source = %s", tk.Source)
	}
	if tk.ID != "RED-174782" {
		t.Errorf("id = %q", tk.ID)
	}
	if tk.Summary != "Shard migration stuck after failover" {
		t.Errorf("summary = %q", tk.Summary)
	}
	if tk.Priority != "High" || tk.Status != "Open" {
		t.Errorf("priority/status = %q/%q", tk.Priority, tk.Status)
	}
	if tk.Customer != "Globex" {
		t.Errorf("customer = %q", tk.Customer)
	}
	if len(tk.Labels) != 2 || tk.Labels[0] != "replication" {
		t.Errorf("labels = %v", tk.Labels)
	}
	if !strings.Contains(tk.Description, "shard migration never completes") {
		t.Errorf("description = %q", tk.Description)
	}
}

func TestParseZendeskText(t *testing.T) {
	tk := parseZendeskText(zendeskExport, "acme.zendesk.com_tickets_149320_print.pdf")

	if tk.Source != SourceZendesk {
		t.Errorf("source = %s", tk.Source)
	}
	if tk.ID != "149320" {
		t.Errorf("id = %q", tk.ID)
	}
	if tk.Summary != "Globex - Replication lag on CRDB after upgrade" {
		t.Errorf("summary = %q", tk.Summary)
	}
	if tk.SupportTier != "Premium Enterprise" {
		t.Errorf("support tier = %q", tk.SupportTier)
	}
	if len(tk.Labels) != 2 || tk.Labels[1] != "replication" {
		t.Errorf("labels = %v", tk.Labels)
	}
}

func TestCleanZendeskConversation(t *testing.T) {
	desc := cleanZendeskConversation(zendeskExport)

	if !strings.Contains(desc, "**Lee Wong March 3, 2026 at 10:15**") {
		t.Errorf("missing bolded comment header:\n%s", desc)
	}
	if !strings.Contains(desc, "OVC mismatches") {
		t.Errorf("dropped substantive line:\n%s", desc)
	}
	for _, noise := range []string{"Focus Score", "Ticket Location", "Support Software by Zendesk", "1/4"} {
		if strings.Contains(desc, noise) {
			t.Errorf("noise %q survived cleanup:\n%s", noise, desc)
		}
	}
	if strings.Contains(desc, "bot noise line") {
		t.Errorf("bot annotation survived cleanup:\n%s", desc)
	}
}

func TestExtractSupportTier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"sla package", "SLA Package: Enterprise\n", "Enterprise"},
		{"sla package with tam suffix", "SLA Package: Premium Enterprise TAM: assigned", "Premium Enterprise"},
		{"vip mention", "this is a VIP Customer account", "VIP Support"},
		{"none", "no tier here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSupportTier(tt.raw); got != tt.want {
				t.Errorf("extractSupportTier() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadTextExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red-174782.txt")
	if err := os.WriteFile(path, []byte(jiraExport), 0o644); err != nil {
		t.Fatal(err)
	}

	tk, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if tk.ID != "RED-174782" {
		t.Errorf("id = %q", tk.ID)
	}
	if !strings.HasPrefix(tk.Hash, "sha256:") {
		t.Errorf("hash = %q", tk.Hash)
	}
	if tk.FilePath != path {
		t.Errorf("file path = %q", tk.FilePath)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(path, []byte("a,b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseEmpty(t *testing.T) {
	if _, err := Parse("   \n", "x.txt"); err == nil {
		t.Error("expected error for empty export")
	}
}

func TestFromRow(t *testing.T) {
	header := []string{"Issue key", "Summary", "Description", "Priority", "Custom field (Severity)", "Status", "Labels", "Customer"}
	row := []string{"RED-1", "Cluster down", "All shards offline", "Highest", "Very High", "Open", "outage, cluster", "Initech"}

	tk := FromRow(header, row)
	if tk.ID != "RED-1" || tk.Summary != "Cluster down" {
		t.Errorf("id/summary = %q/%q", tk.ID, tk.Summary)
	}
	if tk.Severity != "Very High" {
		t.Errorf("severity = %q", tk.Severity)
	}
	if len(tk.Labels) != 2 || tk.Labels[1] != "cluster" {
		t.Errorf("labels = %v", tk.Labels)
	}
	if tk.Customer != "Initech" {
		t.Errorf("customer = %q", tk.Customer)
	}
}

func TestFromRowShortRow(t *testing.T) {
	header := []string{"Issue key", "Summary", "Description"}
	row := []string{"RED-2"}
	tk := FromRow(header, row)
	if tk.ID != "RED-2" || tk.Summary != "" {
		t.Errorf("id/summary = %q/%q", tk.ID, tk.Summary)
	}
}

func TestParseXML(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<rss version="0.92">
  <channel>
    <item>
      <key id="101">RED-4242</key>
      <summary>Proxy leaks connections under load</summary>
      <description>Connections accumulate until the proxy is restarted.</description>
      <priority>High</priority>
      <status>Open</status>
      <assignee>dana</assignee>
      <labels>proxy, leak</labels>
    </item>
  </channel>
</rss>`)

	tk, err := parseXML(data)
	if err != nil {
		t.Fatalf("parseXML() error = %v", err)
	}
	if tk.ID != "RED-4242" {
		t.Errorf("id = %q", tk.ID)
	}
	if tk.Summary != "Proxy leaks connections under load" {
		t.Errorf("summary = %q", tk.Summary)
	}
	if tk.Priority != "High" || tk.Assignee != "dana" {
		t.Errorf("priority/assignee = %q/%q", tk.Priority, tk.Assignee)
	}
	if len(tk.Labels) != 2 {
		t.Errorf("labels = %v", tk.Labels)
	}
}

func TestParseXMLNoFields(t *testing.T) {
	if _, err := parseXML([]byte(`<root><other>x</other></root>`)); err == nil {
		t.Error("expected error for XML without ticket fields")
	}
}

func TestDocxText(t *testing.T) {
	doc := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Issue Key: RED-99</w:t></w:r></w:p>
    <w:p><w:r><w:t>Summary: Backup job hangs</w:t></w:r></w:p>
    <w:p><w:r><w:t>Description: The nightly backup never finishes.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := docxText(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("docxText() error = %v", err)
	}
	if !strings.Contains(text, "Issue Key: RED-99\n") {
		t.Errorf("text = %q", text)
	}

	tk, err := Parse(text, "export.docx")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tk.ID != "RED-99" || tk.Summary != "Backup job hangs" {
		t.Errorf("id/summary = %q/%q", tk.ID, tk.Summary)
	}
}
