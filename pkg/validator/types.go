package validator

import (
	"fmt"
	"time"

	"github.com/readuntil/ruvalidate/pkg/header"
	"github.com/readuntil/ruvalidate/pkg/schema"
)

// ValidationStatus is the overall outcome of a run.
type ValidationStatus string

const (
	// ValidationStatusPass means the document conforms and no target line was rejected.
	ValidationStatusPass ValidationStatus = "pass"

	// ValidationStatusFail means the document does not conform to the schema.
	ValidationStatusFail ValidationStatus = "fail"

	// ValidationStatusWarning means the document conforms but target lines were rejected.
	ValidationStatusWarning ValidationStatus = "warning"
)

// ValidationResult is the report of a single run.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Source names the validated files.
	Source Source `json:"source" yaml:"source"`

	// Summary holds the outcome and counts.
	Summary Summary `json:"summary" yaml:"summary"`

	// SchemaErrors lists leaf schema validation errors.
	SchemaErrors []schema.Issue `json:"schemaErrors,omitempty" yaml:"schemaErrors,omitempty"`

	// Violations lists rejected target lines in the order found.
	Violations []Violation `json:"violations,omitempty" yaml:"violations,omitempty"`

	// Skipped lists conditions whose targets were not read from a file.
	Skipped []SkippedTarget `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Hints lists likely misspelled condition keys.
	Hints []Hint `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// NewValidationResult returns an empty result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		SchemaErrors: []schema.Issue{},
		Violations:   []Violation{},
		Skipped:      []SkippedTarget{},
		Hints:        []Hint{},
	}
}

// Source names the inputs of a run.
type Source struct {
	Config string `json:"config" yaml:"config"`
	Schema string `json:"schema" yaml:"schema"`
}

// Summary aggregates a run.
type Summary struct {
	Status       ValidationStatus `json:"status" yaml:"status"`
	SchemaValid  bool             `json:"schemaValid" yaml:"schemaValid"`
	TargetCheck  bool             `json:"targetCheck" yaml:"targetCheck"`
	Conditions   int              `json:"conditions" yaml:"conditions"`
	Patterns     int              `json:"patterns" yaml:"patterns"`
	FilesChecked int              `json:"filesChecked" yaml:"filesChecked"`
	LinesChecked int              `json:"linesChecked" yaml:"linesChecked"`
	Violations   int              `json:"violations" yaml:"violations"`
	Skipped      int              `json:"skipped" yaml:"skipped"`
	Hints        int              `json:"hints" yaml:"hints"`
	Duration     time.Duration    `json:"duration" yaml:"duration"`
}

// Violation is a target line that matches none of the permitted patterns.
type Violation struct {
	// File is the target file path as written in the document.
	File string `json:"file" yaml:"file"`

	// Line is the 1-based line number.
	Line int `json:"line" yaml:"line"`

	// Content is the line with surrounding whitespace removed.
	Content string `json:"content" yaml:"content"`

	// Condition is the id of the condition referencing the file.
	Condition string `json:"condition" yaml:"condition"`
}

// String renders the violation as "path:line is invalid (content)".
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d is invalid (%s)", v.File, v.Line, v.Content)
}

// Reasons a condition's targets were not read from a file.
const (
	SkipNoTargets   = "no targets"
	SkipNotFilePath = "targets is not a file reference"
	SkipNotFound    = "target file does not exist"
	SkipNotRegular  = "target path is not a regular file"
)

// SkippedTarget records a condition the target check did not read a file for.
type SkippedTarget struct {
	Condition string `json:"condition" yaml:"condition"`
	Targets   string `json:"targets,omitempty" yaml:"targets,omitempty"`
	Reason    string `json:"reason" yaml:"reason"`
}

// Hint suggests a known property name for an unknown condition key.
type Hint struct {
	Condition  string `json:"condition" yaml:"condition"`
	Key        string `json:"key" yaml:"key"`
	Suggestion string `json:"suggestion" yaml:"suggestion"`
}

// String renders the hint for humans.
func (h Hint) String() string {
	return fmt.Sprintf("condition %s: unknown key %q, did you mean %q?", h.Condition, h.Key, h.Suggestion)
}
