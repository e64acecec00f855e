package schema

import (
	"log/slog"

	"github.com/dlclark/regexp2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/readuntil/ruvalidate/pkg/defaults"
)

// CompileRegexp compiles expr with the engine used for every regex in the
// tool, with a bounded match time.
func CompileRegexp(expr string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = defaults.PatternMatchTimeout
	return re, nil
}

// FullMatchExpr anchors expr so it must match the whole input.
func FullMatchExpr(expr string) string {
	return `\A(?:` + expr + `)\z`
}

// schemaRegexp adapts regexp2 to the schema compiler's Regexp interface.
type schemaRegexp struct {
	re *regexp2.Regexp
}

func (r schemaRegexp) MatchString(s string) bool {
	ok, err := r.re.MatchString(s)
	if err != nil {
		slog.Warn("schema pattern evaluation failed", "pattern", r.re.String(), "error", err)
		return false
	}
	return ok
}

func (r schemaRegexp) String() string {
	return r.re.String()
}

func compileSchemaRegexp(expr string) (jsonschema.Regexp, error) {
	re, err := CompileRegexp(expr)
	if err != nil {
		return nil, err
	}
	return schemaRegexp{re: re}, nil
}
