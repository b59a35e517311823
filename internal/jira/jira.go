// Package jira maps scored tickets onto paste-ready Jira fields. There is
// no API client here; the output is rendered for manual ticket creation.
package jira

import (
	"fmt"

	"github.com/jalvord/tickettriage/internal/classify"
	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

// Known bug projects. RCA tickets go to the dedicated RCA project.
const (
	DefaultProject = "RED"
	RCAProject     = "Root Cause Analysis"
)

// TicketData holds every field needed to create a Jira ticket by hand.
type TicketData struct {
	Project      string            `json:"project"`
	IssueType    string            `json:"issue_type"`
	Summary      string            `json:"summary"`
	Description  string            `json:"description"`
	Priority     string            `json:"priority"`
	Severity     string            `json:"severity"`
	Assignee     string            `json:"assignee,omitempty"`
	Labels       []string          `json:"labels,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	LinkedIssues []string          `json:"linked_issues,omitempty"`

	// Scoring context carried for rendering; empty for RCA tickets.
	Breakdown *score.Breakdown    `json:"breakdown,omitempty"`
	Estimates []classify.Estimate `json:"estimates,omitempty"`
	SourceID  string              `json:"source_id,omitempty"`
}

// JiraPriority maps a triage band to the Jira priority field value.
func JiraPriority(p score.Priority) string {
	switch p {
	case score.PriorityCritical:
		return "Highest"
	case score.PriorityHigh:
		return "High"
	case score.PriorityMedium:
		return "Medium"
	case score.PriorityLow:
		return "Low"
	default:
		return "Lowest"
	}
}

// PLevel maps a Jira priority to its P-level display form.
func PLevel(priority string) string {
	switch priority {
	case "Highest":
		return "P1 - Critical"
	case "High":
		return "P2 - High"
	case "Medium":
		return "P3 - Medium"
	case "Low":
		return "P4 - Low"
	case "Lowest":
		return "P5 - Minimal"
	default:
		return priority
	}
}

// JiraSeverity maps a total score to the Jira severity field value.
func JiraSeverity(total int) string {
	switch {
	case total >= 90:
		return "Very High"
	case total >= 70:
		return "High"
	case total >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

// MapBug builds the bug TicketData for a parsed, classified, scored ticket.
// Summary and description may already have been replaced by LLM analysis.
func MapBug(t *ticket.Ticket, estimates []classify.Estimate, b score.Breakdown, labels []string, project string) TicketData {
	if project == "" {
		project = DefaultProject
	}

	infra := classify.ExtractInfrastructure(t.Description)
	custom := map[string]string{
		"impact_score": fmt.Sprintf("%d", b.Total),
		"component":    classify.DetectComponent(t.Description),
		"platform":     classify.DetectPlatform(t.Description),
		"environment":  "Production",
	}
	if t.Source == ticket.SourceZendesk {
		custom["zendesk_id"] = t.ID
	}
	if t.Customer != "" {
		custom["customer"] = t.Customer
	}
	if infra.ClusterID != "" {
		custom["cluster_id"] = infra.ClusterID
	}
	if infra.CacheName != "" {
		custom["cache_name"] = infra.CacheName
	}
	if infra.Region != "" {
		custom["region"] = infra.Region
	}

	return TicketData{
		Project:      project,
		IssueType:    "Bug",
		Summary:      t.Summary,
		Description:  t.Description,
		Priority:     JiraPriority(score.PriorityFor(b.Total)),
		Severity:     JiraSeverity(b.Total),
		Labels:       labels,
		CustomFields: custom,
		Breakdown:    &b,
		Estimates:    estimates,
		SourceID:     t.ID,
	}
}
