package schema

import (
	"fmt"
	"sort"

	"github.com/dlclark/regexp2"

	"github.com/readuntil/ruvalidate/pkg/defaults"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

// Pattern sources.
const (
	SourcePattern = "pattern"
	SourceConst   = "const"
)

// TargetPattern is one permitted form of a target line.
type TargetPattern struct {
	// Source is SourcePattern or SourceConst.
	Source string `json:"source" yaml:"source"`

	// Value is the regex (pattern) or literal string (const).
	Value string `json:"value" yaml:"value"`
}

// Expr returns the regular expression for the pattern.
func (p TargetPattern) Expr() string {
	if p.Source == SourceConst {
		return regexp2.Escape(p.Value)
	}
	return p.Value
}

// TargetPatternsPath is the human readable location of the target patterns.
var TargetPatternsPath = fmt.Sprintf(`definitions.%s.patternProperties[%q].properties.%s.items.oneOf`,
	defaults.ConditionsKey, defaults.ConditionIDPattern, defaults.TargetsKey)

// conditionSchema returns the schema applied to each numbered condition.
func (s *Schema) conditionSchema() (map[string]any, bool) {
	if s == nil {
		return nil, false
	}
	for _, defsKey := range defaults.DefinitionsKeys {
		v, ok := lookup(s.Raw, defsKey, defaults.ConditionsKey, "patternProperties", defaults.ConditionIDPattern)
		if !ok {
			continue
		}
		if m, ok := v.(map[string]any); ok {
			return m, true
		}
	}
	return nil, false
}

// TargetPatterns extracts the permitted target line forms. It fails with
// ErrCodePatternsMissing when the schema does not declare them.
func (s *Schema) TargetPatterns() ([]TargetPattern, error) {
	cond, ok := s.conditionSchema()
	if !ok {
		return nil, rverrors.New(rverrors.ErrCodePatternsMissing,
			"schema does not define numbered conditions at "+TargetPatternsPath)
	}

	v, ok := lookup(cond, "properties", defaults.TargetsKey, "items", "oneOf")
	if !ok {
		return nil, rverrors.New(rverrors.ErrCodePatternsMissing,
			"schema does not define target patterns at "+TargetPatternsPath)
	}
	entries, ok := v.([]any)
	if !ok {
		return nil, rverrors.New(rverrors.ErrCodePatternsMissing,
			fmt.Sprintf("%s must be an array, got %T", TargetPatternsPath, v))
	}

	var patterns []TargetPattern
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if p, ok := m[SourcePattern].(string); ok {
			patterns = append(patterns, TargetPattern{Source: SourcePattern, Value: p})
		}
		if c, ok := m[SourceConst].(string); ok {
			patterns = append(patterns, TargetPattern{Source: SourceConst, Value: c})
		}
	}
	return patterns, nil
}

// ConditionProperties returns the sorted property names a numbered
// condition may declare, or nil when the schema does not list them.
func (s *Schema) ConditionProperties() []string {
	cond, ok := s.conditionSchema()
	if !ok {
		return nil
	}
	props, ok := cond["properties"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for k := range props {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String renders the pattern for listings.
func (p TargetPattern) String() string {
	return fmt.Sprintf("%s: %s", p.Source, p.Value)
}

// lookup walks nested mappings.
func lookup(v any, keys ...string) (any, bool) {
	cur := v
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
