package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/readuntil/ruvalidate/pkg/schema"
	"github.com/readuntil/ruvalidate/pkg/serializer"
	"github.com/readuntil/ruvalidate/pkg/validator"
)

func patternsCmd() *cli.Command {
	return &cli.Command{
		Name:      "patterns",
		Usage:     "List the target line patterns a schema permits",
		ArgsUsage: "SCHEMA",
		Description: `Prints the target patterns --targets enforces, one per line, as
"pattern: REGEX" or "const: LITERAL". A target line is valid when it fully
matches at least one of them.

# Examples

  ruvalidate patterns rules.schema.json
  ruvalidate patterns --format yaml rules.schema.json`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return &ExitError{
					Code:    ExitUsage,
					Message: fmt.Sprintf("%s patterns: expected SCHEMA argument, got %d (see --help)", name, cmd.NArg()),
				}
			}

			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			draft, err := parseDraft(cmd)
			if err != nil {
				return err
			}

			sch, err := schema.Load(cmd.Args().First(), schema.WithDefaultDraft(draft))
			if err != nil {
				return err
			}

			// Compiling surfaces patterns the target check could not use.
			set, err := validator.ExtractPatterns(sch)
			if err != nil {
				return err
			}

			return writePatterns(ctx, cmd.Root().Writer, format, cmd.String("output"), set.Patterns())
		},
	}
}

func writePatterns(ctx context.Context, stdout io.Writer, format serializer.Format, output string, patterns []schema.TargetPattern) error {
	if patterns == nil {
		patterns = []schema.TargetPattern{}
	}

	if format == "" {
		return writeTo(output, stdout, func(w io.Writer) error {
			var b strings.Builder
			for _, p := range patterns {
				b.WriteString(p.String())
				b.WriteByte('\n')
			}
			_, err := io.WriteString(w, b.String())
			return err
		})
	}
	return serializeTo(ctx, format, output, stdout, patterns)
}
