// Package classify maps parsed tickets onto validated rubric selections
// using keyword heuristics. The rules live in embedded YAML profiles so the
// heuristic layer can be tuned or swapped without touching the engine.
package classify

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Profile is a named rule set: per-component keyword rules plus label rules.
type Profile struct {
	Name        string                    `yaml:"name"`
	Version     int                       `yaml:"version"`
	Description string                    `yaml:"description"`
	Components  map[string]ComponentRules `yaml:"components"`
	Labels      []LabelRule               `yaml:"labels"`
}

// ComponentRules holds the ordered rules for one scoring component. Rules
// are evaluated top to bottom; the first match wins, otherwise Default
// applies.
type ComponentRules struct {
	Default Choice `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

// Choice is a point value with its human-readable reason.
type Choice struct {
	Value  int    `yaml:"value"`
	Reason string `yaml:"reason"`
}

// Rule matches when any keyword appears (case-insensitive) in the selected
// ticket field. Field defaults to the full ticket text.
type Rule struct {
	Choice   `yaml:",inline"`
	Field    string   `yaml:"field,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// LabelRule attaches a Jira label when any of its keywords appear.
type LabelRule struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("classify.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("classify.LoadBuiltin: parse %q: %w", name, err)
	}
	return &p, nil
}

// List returns the names of all built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if n := e.Name(); strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}
