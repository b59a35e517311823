package classify

import "strings"

// ExtractLabels derives Jira labels from ticket content using the profile's
// label rules. The customer name (spaces collapsed to underscores) and the
// source system are appended when present, and the result is deduplicated
// and capped at max.
func ExtractLabels(p *Profile, summary, description, customer, source string, max int) []string {
	text := strings.ToLower(summary + "\n" + description)

	var labels []string
	seen := map[string]bool{}
	add := func(l string) {
		if l == "" || seen[l] {
			return
		}
		seen[l] = true
		labels = append(labels, l)
	}

	for _, rule := range p.Labels {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				add(rule.Label)
				break
			}
		}
	}

	if customer != "" {
		add(strings.ReplaceAll(customer, " ", "_"))
	}
	if source != "" {
		add(source)
	}

	if max > 0 && len(labels) > max {
		labels = labels[:max]
	}
	return labels
}
