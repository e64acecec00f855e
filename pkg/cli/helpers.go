package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/urfave/cli/v3"

	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
	"github.com/readuntil/ruvalidate/pkg/schema"
	"github.com/readuntil/ruvalidate/pkg/serializer"
)

// formatText selects the human readable report.
const formatText = "text"

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   formatText,
		Usage:   fmt.Sprintf("output format (%s, %s)", formatText, strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
}

func draftFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "draft",
		Value: "2020",
		Usage: fmt.Sprintf("JSON Schema draft used when the schema declares no $schema (%s)", strings.Join(schema.SupportedDrafts(), ", ")),
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// It returns "" for the text report.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	if f == formatText {
		return "", nil
	}
	outFormat := serializer.Format(f)
	if outFormat.IsUnknown() {
		return "", rverrors.New(rverrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown output format: %q, valid formats are: %s, %s",
				f, formatText, strings.Join(serializer.SupportedFormats(), ", ")))
	}
	return outFormat, nil
}

func parseDraft(cmd *cli.Command) (*jsonschema.Draft, error) {
	return schema.ParseDraft(cmd.String("draft"))
}

func isStdout(path string) bool {
	path = strings.TrimSpace(path)
	return path == "" || path == serializer.StdoutURI
}

// writeTo hands write the destination for path, stdout for "" or "-", and
// closes it afterwards.
func writeTo(path string, stdout io.Writer, write func(io.Writer) error) error {
	if isStdout(path) {
		if err := write(stdout); err != nil {
			return rverrors.Wrap(rverrors.ErrCodeIO, "failed to write output", err)
		}
		return nil
	}

	f, err := os.Create(strings.TrimSpace(path))
	if err != nil {
		return rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to create output file", err,
			map[string]any{"path": path})
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to write output", err,
			map[string]any{"path": path})
	}
	return f.Close()
}

// serializeTo writes data in format to path, stdout for "" or "-".
func serializeTo(ctx context.Context, format serializer.Format, path string, stdout io.Writer, data any) error {
	var s serializer.Serializer
	if isStdout(path) {
		s = serializer.NewWriter(format, stdout)
	} else {
		var err error
		if s, err = serializer.NewFileWriterOrStdout(format, path); err != nil {
			return rverrors.Wrap(rverrors.ErrCodeIO, "failed to open output", err)
		}
	}

	err := s.Serialize(ctx, data)
	if c, ok := s.(serializer.Closer); ok {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return rverrors.Wrap(rverrors.ErrCodeIO, "failed to write output", err)
	}
	return nil
}
