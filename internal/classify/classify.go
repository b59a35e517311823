package classify

import (
	"fmt"
	"strings"

	"github.com/jalvord/tickettriage/internal/score"
	"github.com/jalvord/tickettriage/internal/ticket"
)

// Estimate is one classified component selection with the rule reason that
// produced it.
type Estimate struct {
	Selection score.Selection `json:"selection"`
	Reason    string          `json:"reason"`
}

// Classify runs the profile's keyword rules against a ticket and returns
// one validated estimate per component, in display order. Every estimated
// value passes score.Validate before it is returned, so a profile that
// names a value outside a component's closed set fails here rather than at
// evaluation time.
func Classify(t *ticket.Ticket, p *Profile) ([]Estimate, error) {
	estimates := make([]Estimate, 0, len(score.Components))

	for _, c := range score.Components {
		rules, ok := p.Components[string(c)]
		if !ok {
			return nil, fmt.Errorf("classify: profile %q has no rules for component %s", p.Name, c)
		}

		choice := rules.Default
		for _, r := range rules.Rules {
			if matchRule(t, r) {
				choice = r.Choice
				break
			}
		}

		if err := score.Validate(c, choice.Value); err != nil {
			return nil, fmt.Errorf("classify: profile %q: %w", p.Name, err)
		}
		estimates = append(estimates, Estimate{
			Selection: score.Selection{Component: c, Value: choice.Value},
			Reason:    choice.Reason,
		})
	}

	return estimates, nil
}

// Selections strips the reasons, yielding engine input.
func Selections(estimates []Estimate) []score.Selection {
	sels := make([]score.Selection, len(estimates))
	for i, e := range estimates {
		sels[i] = e.Selection
	}
	return sels
}

func matchRule(t *ticket.Ticket, r Rule) bool {
	text := strings.ToLower(fieldText(t, r.Field))
	if text == "" {
		return false
	}
	for _, kw := range r.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// fieldText selects the ticket field a rule inspects. The default is the
// whole searchable text of the ticket.
func fieldText(t *ticket.Ticket, field string) string {
	switch field {
	case "summary":
		return t.Summary
	case "description":
		return t.Description
	case "priority":
		return t.Priority
	case "severity":
		return t.Severity
	case "tier":
		return t.SupportTier
	case "rca":
		return t.RCA
	case "labels":
		return strings.Join(t.Labels, " ")
	default:
		return strings.Join([]string{t.Summary, t.Description, t.Raw}, "\n")
	}
}
