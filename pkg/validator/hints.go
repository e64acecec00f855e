package validator

import (
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/readuntil/ruvalidate/pkg/defaults"
	"github.com/readuntil/ruvalidate/pkg/document"
)

// Suggest returns a hint for every condition key not in known that is
// within defaults.MaxSuggestionDistance of a known name. Ties go to the
// alphabetically first name.
func Suggest(conditions []document.Condition, known []string) []Hint {
	if len(known) == 0 {
		return nil
	}

	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}

	var hints []Hint
	for _, cond := range conditions {
		if cond.Fields == nil {
			continue
		}

		keys := make([]string, 0, len(cond.Fields))
		for k := range cond.Fields {
			if _, ok := knownSet[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)

		for _, key := range keys {
			if suggestion, ok := closest(key, known); ok {
				hints = append(hints, Hint{Condition: cond.ID, Key: key, Suggestion: suggestion})
			}
		}
	}
	return hints
}

func closest(key string, known []string) (string, bool) {
	best := ""
	bestDist := defaults.MaxSuggestionDistance + 1
	for _, k := range known {
		d := levenshtein.ComputeDistance(key, k)
		if d < bestDist || (d == bestDist && k < best) {
			best, bestDist = k, d
		}
	}
	return best, best != ""
}
