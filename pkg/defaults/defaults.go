package defaults

import "time"

// Schema layout.
const (
	// ConditionsKey is the top-level document key holding the conditions table.
	ConditionsKey = "conditions"

	// TargetsKey is the per-condition key naming targets inline or by file.
	TargetsKey = "targets"

	// ConditionIDPattern is the patternProperties key used by the schema for
	// numeric condition identifiers.
	ConditionIDPattern = "^[0-9]+$"
)

// DefinitionsKeys lists the schema keywords searched, in order, for the
// "conditions" definition. "$defs" is the 2019-09+ spelling.
var DefinitionsKeys = []string{"definitions", "$defs"}

// Input buffers.
const (
	// InitialLineBuffer is the read buffer for target files. Lines may be
	// longer.
	InitialLineBuffer = 64 * 1024
)

// Matching bounds.
const (
	// PatternMatchTimeout bounds a single regex evaluation.
	PatternMatchTimeout = 2 * time.Second
)

// Suggestions.
const (
	// MaxSuggestionDistance is the largest Levenshtein distance at which an
	// unknown key is considered a likely misspelling of a known one.
	MaxSuggestionDistance = 2
)
