package score

import "math"

// Multiplier bounds. A multiplier left at zero means "not enabled" and is
// treated as exactly 1.0.
const (
	MinSupportBlocking = 1.0
	MaxSupportBlocking = 1.5
	MinAccountRisk     = 1.0
	MaxAccountRisk     = 2.0
)

// Selection pairs a component with one value from its closed set.
type Selection struct {
	Component Component `json:"component"`
	Value     int       `json:"value"`
}

// Multipliers holds the optional continuous scaling factors applied after
// the component sum. The zero value is a no-op (both factors 1.0).
type Multipliers struct {
	SupportBlocking float64 `json:"support_blocking,omitempty"`
	AccountRisk     float64 `json:"account_risk,omitempty"`
}

// ComponentScore records the value used for one component.
type ComponentScore struct {
	Component Component `json:"component"`
	Value     int       `json:"value"`
}

// Breakdown is the immutable record of a single evaluation: the six
// component values in display order, the multipliers applied, the
// pre-multiplier subtotal, and the final total.
type Breakdown struct {
	Components      []ComponentScore `json:"components"`
	SupportBlocking float64          `json:"support_blocking"`
	AccountRisk     float64          `json:"account_risk"`
	Subtotal        int              `json:"subtotal"`
	Total           int              `json:"total"`
}

// Validate checks a single component value against its closed set. It never
// snaps to the nearest allowed value.
func Validate(c Component, value int) error {
	vals, ok := allowedValues[c]
	if !ok {
		return &InvalidValueError{Component: c, Value: value}
	}
	for _, v := range vals {
		if v == value {
			return nil
		}
	}
	return &InvalidValueError{Component: c, Value: value}
}

// Evaluate computes the impact score for a full set of selections. All six
// components must be present exactly once and every value must be a member
// of its component's set. The total is the integer subtotal scaled by the
// two multipliers and rounded half-up. Pure function of its inputs.
func Evaluate(selections []Selection, m Multipliers) (Breakdown, error) {
	blocking := m.SupportBlocking
	if blocking == 0 {
		blocking = 1.0
	}
	risk := m.AccountRisk
	if risk == 0 {
		risk = 1.0
	}

	if blocking < MinSupportBlocking || blocking > MaxSupportBlocking {
		return Breakdown{}, &MultiplierRangeError{
			Name: "support blocking", Value: blocking,
			Min: MinSupportBlocking, Max: MaxSupportBlocking,
		}
	}
	if risk < MinAccountRisk || risk > MaxAccountRisk {
		return Breakdown{}, &MultiplierRangeError{
			Name: "account risk", Value: risk,
			Min: MinAccountRisk, Max: MaxAccountRisk,
		}
	}

	chosen := make(map[Component]int, len(Components))
	for _, sel := range selections {
		if err := Validate(sel.Component, sel.Value); err != nil {
			return Breakdown{}, err
		}
		if _, dup := chosen[sel.Component]; dup {
			return Breakdown{}, &MissingComponentError{Component: sel.Component, Duplicate: true}
		}
		chosen[sel.Component] = sel.Value
	}

	scores := make([]ComponentScore, 0, len(Components))
	subtotal := 0
	for _, c := range Components {
		v, ok := chosen[c]
		if !ok {
			return Breakdown{}, &MissingComponentError{Component: c}
		}
		scores = append(scores, ComponentScore{Component: c, Value: v})
		subtotal += v
	}

	total := int(math.Floor(float64(subtotal)*blocking*risk + 0.5))

	return Breakdown{
		Components:      scores,
		SupportBlocking: blocking,
		AccountRisk:     risk,
		Subtotal:        subtotal,
		Total:           total,
	}, nil
}
