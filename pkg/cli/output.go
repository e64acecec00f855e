package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/readuntil/ruvalidate/pkg/validator"
)

const (
	invalidBanner = "😾 this TOML file is not valid and may not work with Read Until:"
	hintPrefix    = "💡 "
)

// renderText writes the human readable report for the configuration at path.
func renderText(w io.Writer, path string, result *validator.ValidationResult) error {
	var b strings.Builder

	if result.Summary.Status == validator.ValidationStatusFail {
		b.WriteString(invalidBanner)
		b.WriteString("\n\n")
		for _, issue := range result.SchemaErrors {
			b.WriteString(issue.String())
			b.WriteByte('\n')
		}
	}

	for _, v := range result.Violations {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}

	for _, h := range result.Hints {
		b.WriteString(hintPrefix)
		b.WriteString(h.String())
		b.WriteByte('\n')
	}

	if result.Summary.Status == validator.ValidationStatusPass {
		fmt.Fprintf(&b, "😸 %s is valid\n", path)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
