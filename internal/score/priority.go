package score

// Priority is the triage band a total score falls into.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityMinimal  Priority = "MINIMAL"
)

// PriorityFor maps a total score to its triage band.
func PriorityFor(total int) Priority {
	switch {
	case total >= 90:
		return PriorityCritical
	case total >= 70:
		return PriorityHigh
	case total >= 50:
		return PriorityMedium
	case total >= 30:
		return PriorityLow
	default:
		return PriorityMinimal
	}
}
