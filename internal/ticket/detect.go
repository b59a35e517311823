package ticket

import (
	"regexp"
	"strings"
)

var jiraIndicators = []string{
	"project:", "issue type:", "fix versions:", "affects versions:",
	"resolution:", "components:", "sprint:",
}

var zendeskIndicators = []string{
	"ticket #", "requester", "submitted", "received via",
	"sla package", "zendesk",
}

// detectZendesk decides whether export text came from Zendesk. The filename
// is the strongest signal, then a zendesk.com URL in the content; otherwise
// indicator phrases are counted, with Jira phrases checked first to avoid
// false positives on Jira exports that mention Zendesk tickets.
func detectZendesk(raw, filename string) bool {
	if strings.Contains(strings.ToLower(filename), "zendesk") {
		return true
	}

	lower := strings.ToLower(raw)
	if strings.Contains(lower, "zendesk.com") {
		return true
	}

	jiraMatches := 0
	for _, ind := range jiraIndicators {
		if strings.Contains(lower, ind) {
			jiraMatches++
		}
	}
	if jiraMatches >= 3 {
		return false
	}

	zendeskMatches := 0
	for _, ind := range zendeskIndicators {
		if strings.Contains(lower, ind) {
			zendeskMatches++
		}
	}
	return zendeskMatches >= 2
}

var (
	jiraKeyPattern      = regexp.MustCompile(`(?m)^\[?([A-Z]+-\d+)\]?`)
	jiraTitlePattern    = regexp.MustCompile(`(?is)\[([A-Z]+-\d+)\]\s+(.+?)\s+Created:`)
	jiraDescPattern     = regexp.MustCompile(`(?is)Description:\s*(.+?)(?:\n[A-Z][a-z]+:|$)`)
	whitespaceRun       = regexp.MustCompile(`\s+`)
	titleTrailingFields = regexp.MustCompile(`(?i)\s+(Updated|Status|Priority):.*$`)
)

// parseJiraText extracts Jira fields from flat export text.
func parseJiraText(raw string) *Ticket {
	t := &Ticket{Source: SourceJira, Raw: raw}

	t.ID = extractField(raw, `Issue Key:\s*([A-Z]+-\d+)`)
	if t.ID == "" {
		if m := jiraKeyPattern.FindStringSubmatch(raw); m != nil {
			t.ID = m[1]
		}
	}

	t.Summary = extractField(raw, `Summary:\s*(.+)`)
	if t.Summary == "" {
		if m := jiraTitlePattern.FindStringSubmatch(raw); m != nil {
			s := whitespaceRun.ReplaceAllString(m[2], " ")
			t.Summary = strings.TrimSpace(titleTrailingFields.ReplaceAllString(s, ""))
		}
	}

	if m := jiraDescPattern.FindStringSubmatch(raw); m != nil {
		t.Description = strings.TrimSpace(m[1])
	} else if len(raw) > 1000 {
		t.Description = raw[:1000]
	} else {
		t.Description = raw
	}

	t.Priority = extractField(raw, `Priority:\s*(\w+)`)
	t.Severity = extractField(raw, `Severity:\s*(.+)`)
	t.Status = extractField(raw, `Status:\s*(\w+)`)
	t.Assignee = extractField(raw, `Assignee:\s*(.+)`)
	t.Requester = extractField(raw, `Reporter:\s*(.+)`)
	t.RCA = extractField(raw, `RCA:\s*(.+)`)
	t.Labels = extractList(raw, `Labels:\s*(.+)`)
	t.Customer = extractJiraCustomer(raw)

	return t
}

var jiraCustomerPatterns = []string{
	`Customer:\s*(.+)`,
	`Account:\s*(.+)`,
	`Organization:\s*(.+)`,
	`Company:\s*(.+)`,
	`Affected Organizations?:\s*(.+)`,
	`Seen by Customers?:\s*(.+)`,
}

func extractJiraCustomer(raw string) string {
	for _, p := range jiraCustomerPatterns {
		v := extractField(raw, p)
		switch v {
		case "", "None", "N/A", "-":
			continue
		}
		return v
	}
	return ""
}

var (
	zendeskFileIDPattern  = regexp.MustCompile(`(?i)tickets?_(\d+)`)
	zendeskFirstIDPattern = regexp.MustCompile(`#(\d{5,7})\s+[\w\s]+-`)
	zendeskAnyIDPattern   = regexp.MustCompile(`(?i)Ticket #(\d+)`)
	zendeskTitlePattern   = regexp.MustCompile(`#\d{5,7}\s+(.+)`)
	zendeskTierPattern    = regexp.MustCompile(`(?i)SLA Package:\s*(.+)`)
	zendeskVIPPattern     = regexp.MustCompile(`(?i)VIP\s+(Support|Package|Customer)`)
	tierTrailingPattern   = regexp.MustCompile(`(?i)\s+TAM:.*`)
)

// parseZendeskText extracts Zendesk fields from flat export text.
func parseZendeskText(raw, filename string) *Ticket {
	t := &Ticket{Source: SourceZendesk, Raw: raw}

	// Ticket ID: filename beats the primary #NNNNNN line beats any
	// "Ticket #" reference (exports list related tickets further down).
	if m := zendeskFileIDPattern.FindStringSubmatch(filename); m != nil {
		t.ID = m[1]
	} else if m := zendeskFirstIDPattern.FindStringSubmatch(head(raw, 2000)); m != nil {
		t.ID = m[1]
	} else if m := zendeskAnyIDPattern.FindStringSubmatch(raw); m != nil {
		t.ID = m[1]
	}

	if m := zendeskTitlePattern.FindStringSubmatch(head(raw, 500)); m != nil {
		s := strings.TrimSpace(m[1])
		t.Summary = strings.TrimSuffix(s, " Submitted")
	} else {
		t.Summary = extractField(raw, `Subject:\s*(.+)`)
	}

	t.Description = cleanZendeskConversation(raw)
	t.Priority = extractField(raw, `Priority:\s*(\w+)`)
	t.Status = extractField(raw, `Status:\s*(\w+)`)
	t.Requester = extractField(raw, `Requester:\s*(.+)`)
	t.Assignee = extractField(raw, `Assignee:\s*(.+)`)
	t.Customer = extractField(raw, `Organization:\s*(.+)`)
	t.Labels = extractList(raw, `Tags:\s*(.+)`)
	t.SupportTier = extractSupportTier(raw)

	return t
}

// extractSupportTier finds the customer's support tier, used upstream for
// ARR estimation.
func extractSupportTier(raw string) string {
	if m := zendeskTierPattern.FindStringSubmatch(raw); m != nil {
		tier := strings.TrimSpace(m[1])
		return strings.TrimSpace(tierTrailingPattern.ReplaceAllString(tier, ""))
	}
	if zendeskVIPPattern.MatchString(raw) {
		return "VIP Support"
	}
	return ""
}

func extractField(raw, pattern string) string {
	re := regexp.MustCompile(`(?i)` + pattern)
	if m := re.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func extractList(raw, pattern string) []string {
	v := extractField(raw, pattern)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func head(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
