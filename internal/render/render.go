// Package render produces the output formats: a paste-ready Markdown ticket
// document, plain console text, and JSON.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/jira"
	"github.com/jalvord/tickettriage/internal/score"
)

// Markdown renders a ticket draft as a paste-ready Markdown document.
func Markdown(td jira.TicketData) string {
	var b strings.Builder

	header := "# JIRA BUG TICKET - READY FOR SUBMISSION"
	if needsRCA(td) {
		header += " - RCA NEEDED"
	}
	if td.IssueType == "RCA" {
		header = "# JIRA RCA TICKET - READY FOR SUBMISSION"
	}
	b.WriteString(header + "\n\n")

	fmt.Fprintf(&b, "**PROJECT:** %s\n", td.Project)
	fmt.Fprintf(&b, "**ISSUE TYPE:** %s\n", td.IssueType)
	fmt.Fprintf(&b, "**PRIORITY:** %s (%s)\n", td.Priority, jira.PLevel(td.Priority))
	fmt.Fprintf(&b, "**SEVERITY:** %s\n", td.Severity)
	if td.Breakdown != nil {
		fmt.Fprintf(&b, "**IMPACT SCORE:** %d (%s)\n", td.Breakdown.Total, score.PriorityFor(td.Breakdown.Total))
	}
	b.WriteString("\n")

	if td.Breakdown != nil {
		b.WriteString("### Impact Score Breakdown\n\n")
		b.WriteString("| Component | Score | Reason |\n")
		b.WriteString("|-----------|-------|--------|\n")
		reasons := reasonIndex(td.Estimates)
		for _, cs := range td.Breakdown.Components {
			fmt.Fprintf(&b, "| %s | %d/%d | %s |\n",
				cs.Component.DisplayName(), cs.Value, cs.Component.Max(), reasons[cs.Component])
		}
		if td.Breakdown.SupportBlocking != 1.0 {
			fmt.Fprintf(&b, "| Support Blocking | x%.2f | multiplier |\n", td.Breakdown.SupportBlocking)
		}
		if td.Breakdown.AccountRisk != 1.0 {
			fmt.Fprintf(&b, "| Account Risk | x%.2f | multiplier |\n", td.Breakdown.AccountRisk)
		}
		fmt.Fprintf(&b, "| **Total** | **%d** | |\n\n", td.Breakdown.Total)
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(td.Summary + "\n\n")

	b.WriteString("## Description\n\n")
	b.WriteString(strings.TrimRight(td.Description, "\n") + "\n\n")

	if len(td.CustomFields) > 0 {
		b.WriteString("## Environment\n\n")
		for _, key := range environmentOrder {
			if v, ok := td.CustomFields[key]; ok {
				fmt.Fprintf(&b, "- **%s:** %s\n", environmentNames[key], v)
			}
		}
		b.WriteString("\n")
	}

	if len(td.Labels) > 0 {
		b.WriteString("## Labels\n\n")
		b.WriteString(strings.Join(td.Labels, ", ") + "\n\n")
	}

	if len(td.LinkedIssues) > 0 || td.SourceID != "" {
		b.WriteString("## Related Tickets\n\n")
		if td.SourceID != "" {
			fmt.Fprintf(&b, "- Source: %s\n", td.SourceID)
		}
		for _, l := range td.LinkedIssues {
			fmt.Fprintf(&b, "- %s\n", l)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Attachments\n\n")
	b.WriteString("- Original support export\n\n")

	b.WriteString("**Affects Version:** TBD\n")
	b.WriteString("**Fix Version:** TBD\n")

	return b.String()
}

// Text renders a breakdown as plain console text, one Explain line per row.
// When estimates are given, each component line carries its rule reason.
func Text(b score.Breakdown, estimates []classify.Estimate) string {
	reasons := reasonIndex(estimates)
	var out strings.Builder
	for i, line := range score.Explain(b) {
		out.WriteString(line)
		if i < len(b.Components) {
			if r := reasons[b.Components[i].Component]; r != "" {
				out.WriteString("  (" + r + ")")
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}

func reasonIndex(estimates []classify.Estimate) map[score.Component]string {
	idx := make(map[score.Component]string, len(estimates))
	for _, e := range estimates {
		idx[e.Selection.Component] = e.Reason
	}
	return idx
}

// needsRCA reports whether the ticket text asks for a root cause analysis.
func needsRCA(td jira.TicketData) bool {
	if td.IssueType == "RCA" {
		return false
	}
	text := strings.ToLower(td.Description)
	return strings.Contains(text, "rca") || strings.Contains(text, "root cause analysis")
}

// environmentOrder fixes the render order of known custom fields.
var environmentOrder = []string{
	"environment", "component", "platform", "customer",
	"cluster_id", "account_id", "cache_name", "region",
	"zendesk_id", "impact_score", "slack_channel",
}

var environmentNames = map[string]string{
	"environment":   "Environment",
	"component":     "Component",
	"platform":      "Platform",
	"customer":      "Customer",
	"cluster_id":    "Cluster ID",
	"account_id":    "Account ID",
	"cache_name":    "Cache Name",
	"region":        "Region",
	"zendesk_id":    "Zendesk ID",
	"impact_score":  "Impact Score",
	"slack_channel": "Slack Channel",
}

// JSON renders any output value as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render: marshal output: %w", err)
	}
	return string(data) + "\n", nil
}
