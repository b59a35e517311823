package jira

import (
	"fmt"
	"strings"

	"github.com/jalvord/tickettriage/internal/score"
)

// ValidationError describes a single problem with a ticket draft.
type ValidationError struct {
	Path    string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

var validPriorities = map[string]bool{
	"Highest": true, "High": true, "Medium": true, "Low": true, "Lowest": true,
}

var validSeverities = map[string]bool{
	"Very High": true, "High": true, "Medium": true, "Low": true,
}

// Validate checks a ticket draft for structural validity before it is
// rendered for submission.
func Validate(td TicketData) []ValidationError {
	var errs []ValidationError

	if td.Project == "" {
		errs = append(errs, ValidationError{"project", "required"})
	}
	if td.IssueType == "" {
		errs = append(errs, ValidationError{"issue_type", "required"})
	}
	if strings.TrimSpace(td.Summary) == "" {
		errs = append(errs, ValidationError{"summary", "required"})
	}
	if strings.TrimSpace(td.Description) == "" {
		errs = append(errs, ValidationError{"description", "required"})
	}
	if !validPriorities[td.Priority] {
		errs = append(errs, ValidationError{"priority", fmt.Sprintf("invalid: %q", td.Priority)})
	}
	if !validSeverities[td.Severity] {
		errs = append(errs, ValidationError{"severity", fmt.Sprintf("invalid: %q", td.Severity)})
	}

	for i, l := range td.Labels {
		if strings.ContainsAny(l, " \t") {
			errs = append(errs, ValidationError{fmt.Sprintf("labels[%d]", i), fmt.Sprintf("contains whitespace: %q", l)})
		}
	}

	// The rendered fields must agree with the breakdown they came from.
	if td.Breakdown != nil {
		b := td.Breakdown
		if got := JiraPriority(score.PriorityFor(b.Total)); td.Priority != got {
			errs = append(errs, ValidationError{"priority", fmt.Sprintf("score %d maps to %q, got %q", b.Total, got, td.Priority)})
		}
		if got := JiraSeverity(b.Total); td.Severity != got {
			errs = append(errs, ValidationError{"severity", fmt.Sprintf("score %d maps to %q, got %q", b.Total, got, td.Severity)})
		}
		if got, ok := td.CustomFields["impact_score"]; ok && got != fmt.Sprintf("%d", b.Total) {
			errs = append(errs, ValidationError{"custom_fields.impact_score", fmt.Sprintf("expected %d, got %s", b.Total, got)})
		}
	}

	return errs
}
