package score

import "fmt"

// InvalidValueError reports a component value outside its closed set, or a
// selection naming a component that does not exist.
type InvalidValueError struct {
	Component Component
	Value     int
}

func (e *InvalidValueError) Error() string {
	if !e.Component.Valid() {
		return fmt.Sprintf("unknown component %q", string(e.Component))
	}
	return fmt.Sprintf("%s: value %d not in allowed set %v",
		e.Component.DisplayName(), e.Value, e.Component.AllowedValues())
}

// MissingComponentError reports a component that was not supplied, or was
// supplied more than once.
type MissingComponentError struct {
	Component Component
	Duplicate bool
}

func (e *MissingComponentError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s: component selected more than once", e.Component.DisplayName())
	}
	return fmt.Sprintf("%s: component selection missing", e.Component.DisplayName())
}

// MultiplierRangeError reports a multiplier outside its documented bound.
type MultiplierRangeError struct {
	Name     string
	Value    float64
	Min, Max float64
}

func (e *MultiplierRangeError) Error() string {
	return fmt.Sprintf("%s multiplier %.2f outside [%.1f, %.1f]", e.Name, e.Value, e.Min, e.Max)
}
