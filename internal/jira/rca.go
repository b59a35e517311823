package jira

import (
	"fmt"
	"strings"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/ticket"
)

// ActionItem is one row of the RCA action-item table.
type ActionItem struct {
	Description string
	Type        string // Investigate, Prevent, or Mitigate
	Owner       string
	Ticket      string
}

// RCAOpts configures RCA ticket creation.
type RCAOpts struct {
	Customer       string
	Date           string // MM/DD/YY
	ZendeskTickets []string
	RelatedBugs    []string
	Bug            *ticket.Ticket // optional bug export for auto-population
}

// MapRCA builds an RCA TicketData from the standard template, seeding the
// root cause and action items from the linked bug export when available.
func MapRCA(opts RCAOpts) TicketData {
	accountLabel := strings.ReplaceAll(opts.Customer, " ", "_")
	channel := "#prod-" + strings.ReplaceAll(opts.Date, "/", "") + "-" +
		strings.ToLower(strings.ReplaceAll(opts.Customer, " ", ""))

	custom := map[string]string{
		"slack_channel": channel,
	}

	var initialRootCause string
	var items []ActionItem
	if opts.Bug != nil {
		initialRootCause = initialRootCauseFrom(opts.Bug.Summary, opts.Bug.Description)
		items = actionItemsFrom(opts.Bug.Description)

		infra := classify.ExtractInfrastructure(opts.Bug.Description)
		if infra.ClusterID != "" {
			custom["cluster_id"] = infra.ClusterID
		}
		if infra.AccountID != "" {
			custom["account_id"] = infra.AccountID
		}
		if infra.CacheName != "" {
			custom["cache_name"] = infra.CacheName
		}
		if infra.Region != "" {
			custom["region"] = infra.Region
		}
	} else {
		initialRootCause = "<Add your initial RCA here>"
		items = []ActionItem{{
			Description: "<What is the AI about?>",
			Type:        "Investigate or Prevent or Mitigate",
			Owner:       "@name",
			Ticket:      "<jira-ticket>",
		}}
	}

	return TicketData{
		Project:      RCAProject,
		IssueType:    "RCA",
		Summary:      fmt.Sprintf("%s - RCA %s", opts.Customer, opts.Date),
		Description:  rcaDescription(opts, initialRootCause, items),
		Priority:     "Medium",
		Severity:     "Medium",
		Labels:       []string{accountLabel},
		CustomFields: custom,
		LinkedIssues: opts.RelatedBugs,
	}
}

// rootCauseIndicators map keywords in a bug export onto likely root-cause
// phrasings for the initial RCA draft.
var rootCauseIndicators = []struct {
	keyword string
	phrase  string
}{
	{"cpu", "High CPU utilization"},
	{"audit", "Audit logging issues"},
	{"connection", "Connection problems"},
	{"restart", "Service restart required"},
}

func initialRootCauseFrom(summary, description string) string {
	lower := strings.ToLower(description)
	var found []string
	for _, ind := range rootCauseIndicators {
		if strings.Contains(lower, ind.keyword) {
			found = append(found, ind.phrase)
		}
	}
	if len(found) == 0 {
		return fmt.Sprintf("Bug: %s. Root cause analysis needed.", summary)
	}
	return fmt.Sprintf("Initial analysis suggests: %s. Bug: %s. Requires detailed investigation.",
		strings.Join(found, ", "), summary)
}

func actionItemsFrom(description string) []ActionItem {
	lower := strings.ToLower(description)
	var items []ActionItem
	if strings.Contains(lower, "cpu") {
		items = append(items, ActionItem{"Investigate CPU utilization patterns", "Investigate", "@name", "<jira-ticket>"})
	}
	if strings.Contains(lower, "audit") {
		items = append(items, ActionItem{"Review audit logging configuration", "Investigate", "@name", "<jira-ticket>"})
	}
	if strings.Contains(lower, "restart") {
		items = append(items, ActionItem{"Implement automatic recovery mechanisms", "Prevent", "@name", "<jira-ticket>"})
	}
	if len(items) == 0 {
		items = append(items, ActionItem{"Investigate root cause of reported issue", "Investigate", "@name", "<jira-ticket>"})
	}
	return items
}

func rcaDescription(opts RCAOpts, initialRootCause string, items []ActionItem) string {
	var b strings.Builder

	summary := "<Add the summary here.>"
	if opts.Bug != nil && opts.Bug.Summary != "" {
		summary = opts.Bug.Summary
	}
	fmt.Fprintf(&b, "**Summary:** %s\n\n", summary)

	b.WriteString("**Date and Time (UTC)**\n**Activity**\nMMM-DD-YYYY, HH:MM <What happened/what has been done>\n\n")

	if len(opts.ZendeskTickets) > 0 {
		fmt.Fprintf(&b, "**Related Zendesk Tickets:** %s\n\n", strings.Join(opts.ZendeskTickets, ", "))
	}

	fmt.Fprintf(&b, "**Initial Root Cause:** %s\n\n", initialRootCause)
	b.WriteString("**Final Root Cause & Conclusions:** <Add your final RCA and Conclusions here>\n\n")

	b.WriteString("**Action item(s):**\n")
	b.WriteString("After updating the table below, ensure the tickets are linked with the `relates to` type.\n\n")
	b.WriteString("| Description | Type | Owner | Ticket |\n")
	b.WriteString("|-------------|------|-------|--------|\n")
	for _, item := range items {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", item.Description, item.Type, item.Owner, item.Ticket)
	}

	return b.String()
}
