package validator

import (
	"fmt"
	"log/slog"

	"github.com/dlclark/regexp2"

	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
	"github.com/readuntil/ruvalidate/pkg/schema"
)

// PatternSet is the compiled set of permitted target line forms.
// A line is accepted when it fully matches at least one of them.
type PatternSet struct {
	patterns []schema.TargetPattern
	compiled []*regexp2.Regexp
}

// ExtractPatterns extracts and compiles the target patterns declared by sch.
func ExtractPatterns(sch *schema.Schema) (*PatternSet, error) {
	patterns, err := sch.TargetPatterns()
	if err != nil {
		return nil, err
	}
	return CompilePatterns(patterns)
}

// CompilePatterns compiles patterns for full-match semantics.
func CompilePatterns(patterns []schema.TargetPattern) (*PatternSet, error) {
	set := &PatternSet{
		patterns: patterns,
		compiled: make([]*regexp2.Regexp, 0, len(patterns)),
	}
	for _, p := range patterns {
		re, err := schema.CompileRegexp(schema.FullMatchExpr(p.Expr()))
		if err != nil {
			return nil, rverrors.WrapWithContext(rverrors.ErrCodeSchemaInvalid,
				fmt.Sprintf("invalid target pattern %q", p.Value), err,
				map[string]any{"source": p.Source})
		}
		set.compiled = append(set.compiled, re)
	}

	slog.Debug("compiled target patterns", "count", len(set.compiled))

	return set, nil
}

// Len returns the number of patterns.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.compiled)
}

// Patterns returns the source patterns in schema order.
func (s *PatternSet) Patterns() []schema.TargetPattern {
	if s == nil {
		return nil
	}
	return s.patterns
}

// Match reports whether line fully matches any pattern. A pattern whose
// evaluation fails (match timeout) counts as not matching.
func (s *PatternSet) Match(line string) bool {
	if s == nil {
		return false
	}
	for i, re := range s.compiled {
		ok, err := re.MatchString(line)
		if err != nil {
			slog.Warn("target pattern evaluation failed",
				"pattern", s.patterns[i].Value,
				"error", err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}
