// Package score implements the deterministic impact-score rubric: six
// fixed components with closed point-value sets, optional multipliers,
// and a pure evaluation that produces an immutable breakdown.
package score

// Component identifies one of the six fixed scoring categories.
type Component string

const (
	ImpactSeverity Component = "IMPACT_SEVERITY"
	CustomerARR    Component = "CUSTOMER_ARR"
	SLABreach      Component = "SLA_BREACH"
	Frequency      Component = "FREQUENCY"
	Workaround     Component = "WORKAROUND"
	RCAActionItem  Component = "RCA_ACTION_ITEM"
)

// Components lists all six components in display order. Every evaluation
// requires each of them exactly once.
var Components = []Component{
	ImpactSeverity,
	CustomerARR,
	SLABreach,
	Frequency,
	Workaround,
	RCAActionItem,
}

// allowedValues holds the closed value set per component. Any value not
// listed here is invalid input and is rejected, never coerced.
var allowedValues = map[Component][]int{
	ImpactSeverity: {38, 30, 22, 16, 8},
	CustomerARR:    {15, 13, 10, 8, 5, 0},
	SLABreach:      {8, 0},
	Frequency:      {16, 8, 0},
	Workaround:     {15, 12, 10, 5},
	RCAActionItem:  {8, 0},
}

func (c Component) Valid() bool {
	_, ok := allowedValues[c]
	return ok
}

// DisplayName returns the human-readable component name.
func (c Component) DisplayName() string {
	switch c {
	case ImpactSeverity:
		return "Impact & Severity"
	case CustomerARR:
		return "Customer ARR"
	case SLABreach:
		return "SLA Breach"
	case Frequency:
		return "Frequency"
	case Workaround:
		return "Workaround"
	case RCAActionItem:
		return "RCA Action Item"
	default:
		return string(c)
	}
}

// AllowedValues returns a copy of the component's closed value set,
// highest first. Nil for an unknown component.
func (c Component) AllowedValues() []int {
	vals, ok := allowedValues[c]
	if !ok {
		return nil
	}
	out := make([]int, len(vals))
	copy(out, vals)
	return out
}

// Max returns the highest allowed value for the component, used when
// rendering "value/max" lines.
func (c Component) Max() int {
	vals := allowedValues[c]
	if len(vals) == 0 {
		return 0
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
