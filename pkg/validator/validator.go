package validator

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/readuntil/ruvalidate/pkg/document"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
	"github.com/readuntil/ruvalidate/pkg/header"
	"github.com/readuntil/ruvalidate/pkg/schema"
)

const (
	// APIVersion is the API version for validation results.
	APIVersion = "ruvalidate.readuntil.io/v1alpha1"

	// Kind is the kind for validation results.
	Kind = "ValidationResult"
)

// Validator validates configuration documents against a schema.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	// CheckTargets enables the target-file check.
	CheckTargets bool

	// BaseDir resolves relative target file paths. Empty means the
	// working directory.
	BaseDir string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithTargetCheck returns an Option that enables or disables the
// target-file check.
func WithTargetCheck(enabled bool) Option {
	return func(v *Validator) {
		v.CheckTargets = enabled
	}
}

// WithBaseDir returns an Option that sets the directory relative target
// file paths are resolved against.
func WithBaseDir(dir string) Option {
	return func(v *Validator) {
		v.BaseDir = dir
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate validates doc against sch and, when enabled, checks the target
// files the document references.
func (v *Validator) Validate(ctx context.Context, doc *document.Document, sch *schema.Schema) (*ValidationResult, error) {
	start := time.Now()

	if doc == nil {
		return nil, rverrors.New(rverrors.ErrCodeInvalidRequest, "document cannot be nil")
	}
	if sch == nil {
		return nil, rverrors.New(rverrors.ErrCodeInvalidRequest, "schema cannot be nil")
	}

	result, err := v.validate(ctx, doc, sch)
	if err != nil {
		validationTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result.Summary.Duration = time.Since(start)
	validationTotal.WithLabelValues(string(result.Summary.Status)).Inc()
	validationDuration.Observe(result.Summary.Duration.Seconds())

	slog.Debug("validation completed",
		"status", result.Summary.Status,
		"schema_valid", result.Summary.SchemaValid,
		"violations", result.Summary.Violations,
		"skipped", result.Summary.Skipped,
		"hints", result.Summary.Hints,
		"duration", result.Summary.Duration)

	return result, nil
}

func (v *Validator) validate(ctx context.Context, doc *document.Document, sch *schema.Schema) (*ValidationResult, error) {
	result := NewValidationResult()
	result.Init(header.Kind(Kind), APIVersion, v.Version)
	result.Source = Source{Config: doc.Path, Schema: sch.Location}
	result.Summary.TargetCheck = v.CheckTargets

	conditions := doc.Conditions()
	for _, cond := range conditions {
		if cond.Fields != nil {
			result.Summary.Conditions++
		}
	}

	result.Hints = append(result.Hints, Suggest(conditions, sch.ConditionProperties())...)
	result.Summary.Hints = len(result.Hints)
	hintsTotal.Add(float64(len(result.Hints)))

	err := sch.Validate(doc.Data)
	var failure *schema.ValidationFailure
	switch {
	case err == nil:
		result.Summary.SchemaValid = true
	case errors.As(err, &failure):
		result.SchemaErrors = append(result.SchemaErrors, failure.Issues...)
		result.Summary.Status = ValidationStatusFail
		slog.Debug("document does not conform to schema", "issues", len(failure.Issues))
		return result, nil
	default:
		return nil, err
	}

	if v.CheckTargets {
		patterns, err := ExtractPatterns(sch)
		if err != nil {
			return nil, err
		}
		result.Summary.Patterns = patterns.Len()

		if err := v.checkTargets(ctx, conditions, patterns, result); err != nil {
			return nil, err
		}
	}

	if len(result.Violations) > 0 {
		result.Summary.Status = ValidationStatusWarning
	} else {
		result.Summary.Status = ValidationStatusPass
	}
	return result, nil
}
