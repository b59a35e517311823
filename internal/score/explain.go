package score

import "fmt"

// Explain renders a breakdown as ordered human-readable lines: one per
// component, then the multipliers, subtotal, and total. Formatting only,
// no new computation.
func Explain(b Breakdown) []string {
	lines := make([]string, 0, len(b.Components)+4)
	for _, cs := range b.Components {
		lines = append(lines, fmt.Sprintf("%s: %d/%d", cs.Component.DisplayName(), cs.Value, cs.Component.Max()))
	}
	lines = append(lines,
		fmt.Sprintf("Support blocking multiplier: x%.2f", b.SupportBlocking),
		fmt.Sprintf("Account risk multiplier: x%.2f", b.AccountRisk),
		fmt.Sprintf("Subtotal: %d", b.Subtotal),
		fmt.Sprintf("Total: %d (%s)", b.Total, PriorityFor(b.Total)),
	)
	return lines
}
