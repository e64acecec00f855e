package validator

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/readuntil/ruvalidate/pkg/defaults"
	"github.com/readuntil/ruvalidate/pkg/document"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

// checkTargets runs the target-file check over conditions in document order.
func (v *Validator) checkTargets(ctx context.Context, conditions []document.Condition, patterns *PatternSet, result *ValidationResult) error {
	for _, cond := range conditions {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Non-mapping entries such as "reference" are not conditions.
		if cond.Fields == nil {
			continue
		}

		ref, reason := v.targetFile(cond)
		if reason != "" {
			target, _ := cond.TargetsPath()
			result.Skipped = append(result.Skipped, SkippedTarget{
				Condition: cond.ID,
				Targets:   target,
				Reason:    reason,
			})
			slog.Debug("skipping target check for condition",
				"condition", cond.ID,
				"reason", reason)
			continue
		}

		violations, lines, err := CheckFile(ctx, ref.path, patterns)
		if err != nil {
			return err
		}
		for i := range violations {
			violations[i].File = ref.name
			violations[i].Condition = cond.ID
		}

		result.Violations = append(result.Violations, violations...)
		result.Summary.FilesChecked++
		result.Summary.LinesChecked += lines

		targetFilesChecked.Inc()
		targetLinesChecked.Add(float64(lines))
		targetViolationsTotal.Add(float64(len(violations)))
	}

	result.Summary.Violations = len(result.Violations)
	result.Summary.Skipped = len(result.Skipped)
	return nil
}

type targetRef struct {
	// name is the path as written in the document.
	name string
	// path is name resolved against the base directory.
	path string
}

// targetFile resolves the file a condition references, or returns the
// reason it does not reference one.
func (v *Validator) targetFile(cond document.Condition) (targetRef, string) {
	if _, ok := cond.Targets(); !ok {
		return targetRef{}, SkipNoTargets
	}
	name, ok := cond.TargetsPath()
	if !ok {
		return targetRef{}, SkipNotFilePath
	}

	path := name
	if v.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(v.BaseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return targetRef{}, SkipNotFound
	}
	if !info.Mode().IsRegular() {
		return targetRef{}, SkipNotRegular
	}
	return targetRef{name: name, path: path}, ""
}

// CheckFile matches every line of the file at path against patterns and
// returns the rejected lines and the number of lines read. Violations carry
// path as File and no Condition.
func CheckFile(ctx context.Context, path string, patterns *PatternSet) ([]Violation, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to open target file", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	r := bufio.NewReaderSize(f, defaults.InitialLineBuffer)

	var violations []Violation
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, lineNo, err
		}

		raw, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, lineNo, rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to read target file", readErr,
				map[string]any{"path": path, "line": lineNo + 1})
		}
		// A file ending in a newline has no line after it.
		if raw == "" && readErr != nil {
			break
		}
		lineNo++

		line := strings.TrimSpace(raw)
		if !patterns.Match(line) {
			violations = append(violations, Violation{File: path, Line: lineNo, Content: line})
		}

		if readErr != nil {
			break
		}
	}

	slog.Debug("checked target file",
		"path", path,
		"lines", lineNo,
		"violations", len(violations))

	return violations, lineNo, nil
}
