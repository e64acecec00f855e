package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
	"github.com/readuntil/ruvalidate/pkg/logging"
)

const name = "ruvalidate"

var (
	// overridden at build time with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries the process exit code to main. An empty Message means
// the user has already been told what went wrong.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Execute runs the command line in args (args[0] is the program name) and
// returns nil or an *ExitError.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := rootCmd()
	cmd.Writer = stdout
	cmd.ErrWriter = stderr

	err := cmd.Run(ctx, args)
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitFailure
	if rverrors.HasCode(err, rverrors.ErrCodeInvalidRequest) {
		code = ExitUsage
	}
	slog.Debug("command failed", "error", err, "code", rverrors.CodeOf(err))
	return &ExitError{Code: code, Message: fmt.Sprintf("%s: %v", name, err)}
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Validate Read Until TOML configuration files against a JSON Schema",
		ArgsUsage:             "TOML SCHEMA",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		Description: `Validates a Read Until configuration file against a JSON Schema.

With --targets, conditions whose "targets" value names an existing file have
every line of that file checked against the target patterns the schema
declares at:

  definitions.conditions.patternProperties["^[0-9]+$"].properties.targets.items.oneOf

Each rejected line is reported as PATH:LINE is invalid (CONTENT). Rejected
lines do not change the exit status unless --fail-on-violation is given.

# Examples

Validate a configuration:
  ruvalidate experiment.toml rules.schema.json

Also check referenced target files:
  ruvalidate -t experiment.toml rules.schema.json

Machine readable report:
  ruvalidate -t --format json -o report.json experiment.toml rules.schema.json

# Exit Codes

  0  valid (target violations only fail with --fail-on-violation)
  1  invalid configuration, unreadable input, or target violations with --fail-on-violation
  2  usage error`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "targets",
				Aliases: []string{"t"},
				Usage:   "Validate target files referenced by conditions",
			},
			&cli.StringFlag{
				Name:    "targets-dir",
				Usage:   "Directory relative target file paths are resolved against (default: working directory)",
				Sources: cli.EnvVars("RUVALIDATE_TARGETS_DIR"),
			},
			&cli.BoolFlag{
				Name:  "fail-on-violation",
				Usage: "Exit with a non-zero status when a target line is invalid",
			},
			draftFlag(),
			formatFlag(),
			outputFlag(),
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write run metrics to FILE in Prometheus text format",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("RUVALIDATE_DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "Output logs in JSON format",
				Sources: cli.EnvVars("RUVALIDATE_LOG_JSON"),
			},
		},
		Commands: []*cli.Command{
			patternsCmd(),
		},
		Before:       setupLogging,
		OnUsageError: usageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return &ExitError{
					Code:    ExitUsage,
					Message: fmt.Sprintf("%s: expected TOML and SCHEMA arguments, got %d (see --help)", name, cmd.NArg()),
				}
			}

			opts, err := validateOptionsFromCmd(cmd)
			if err != nil {
				return err
			}
			return runValidate(ctx, cmd.Root().Writer, opts)
		},
	}
}

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := logging.LevelFromEnv(slog.LevelWarn)
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}

	slog.SetDefault(logging.New(cmd.Root().ErrWriter, logging.Options{
		Module:  name,
		Version: version,
		Level:   level,
		JSON:    cmd.Bool("log-json"),
	}))

	slog.Debug("starting",
		"args", cmd.Args().Slice(),
		"commit", commit,
		"date", date)

	return ctx, nil
}

func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("%s: %v (see --help)", name, err)}
}

// commandLister prints visible subcommand names for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, c := range cmd.Commands {
		if c.Hidden {
			continue
		}
		fmt.Fprintln(w, c.Name)
	}
}
