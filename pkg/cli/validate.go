package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/urfave/cli/v3"

	"github.com/readuntil/ruvalidate/pkg/document"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
	"github.com/readuntil/ruvalidate/pkg/schema"
	"github.com/readuntil/ruvalidate/pkg/serializer"
	"github.com/readuntil/ruvalidate/pkg/validator"
)

type validateOptions struct {
	configPath      string
	schemaPath      string
	checkTargets    bool
	targetsDir      string
	failOnViolation bool
	draft           *jsonschema.Draft
	format          serializer.Format // "" means text
	output          string
	metricsFile     string
}

func validateOptionsFromCmd(cmd *cli.Command) (validateOptions, error) {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return validateOptions{}, err
	}
	draft, err := parseDraft(cmd)
	if err != nil {
		return validateOptions{}, err
	}

	return validateOptions{
		configPath:      cmd.Args().Get(0),
		schemaPath:      cmd.Args().Get(1),
		checkTargets:    cmd.Bool("targets"),
		targetsDir:      cmd.String("targets-dir"),
		failOnViolation: cmd.Bool("fail-on-violation"),
		draft:           draft,
		format:          format,
		output:          cmd.String("output"),
		metricsFile:     cmd.String("metrics-file"),
	}, nil
}

// runValidate validates the configuration, writes the report and returns
// an *ExitError when the run must end with a non-zero status.
func runValidate(ctx context.Context, stdout io.Writer, o validateOptions) (err error) {
	if o.metricsFile != "" {
		defer func() {
			if werr := writeMetrics(o.metricsFile); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	doc, err := document.Load(o.configPath)
	if err != nil {
		return err
	}

	sch, err := schema.Load(o.schemaPath, schema.WithDefaultDraft(o.draft))
	if err != nil {
		return err
	}

	v := validator.New(
		validator.WithVersion(version),
		validator.WithTargetCheck(o.checkTargets),
		validator.WithBaseDir(o.targetsDir),
	)

	result, err := v.Validate(ctx, doc, sch)
	if err != nil {
		return err
	}

	if err := writeReport(ctx, stdout, o, result); err != nil {
		return err
	}

	switch {
	case result.Summary.Status == validator.ValidationStatusFail:
		return &ExitError{Code: ExitFailure}
	case o.failOnViolation && result.Summary.Violations > 0:
		slog.Debug("failing on target violations", "violations", result.Summary.Violations)
		return &ExitError{Code: ExitFailure}
	}
	return nil
}

func writeReport(ctx context.Context, stdout io.Writer, o validateOptions, result *validator.ValidationResult) error {
	if o.format == "" {
		return writeTo(o.output, stdout, func(w io.Writer) error {
			return renderText(w, o.configPath, result)
		})
	}
	return serializeTo(ctx, o.format, o.output, stdout, result)
}

func writeMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to write metrics file", err,
			map[string]any{"path": path})
	}
	slog.Debug("wrote metrics", "path", path)
	return nil
}
