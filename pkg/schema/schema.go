package schema

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

// DefaultLocation is the resource URL used for schemas compiled from memory.
const DefaultLocation = "mem://ruvalidate/schema.json"

var drafts = map[string]*jsonschema.Draft{
	"4":    jsonschema.Draft4,
	"6":    jsonschema.Draft6,
	"7":    jsonschema.Draft7,
	"2019": jsonschema.Draft2019,
	"2020": jsonschema.Draft2020,
}

// annotationFormats are the "format" values the compiler knows. They are
// registered as annotations so that "format" never fails validation,
// whatever the draft.
var annotationFormats = []string{
	"date-time", "date", "time", "duration", "period",
	"hostname", "idn-hostname", "email", "idn-email",
	"ip-address", "ipv4", "ipv6",
	"uri", "uri-reference", "uriref", "iri", "iri-reference", "uri-template",
	"json-pointer", "relative-json-pointer",
	"uuid", "regex", "semver",
}

func acceptAny(any) error { return nil }

// SupportedDrafts lists the values accepted by ParseDraft.
func SupportedDrafts() []string {
	return []string{"4", "6", "7", "2019", "2020"}
}

// ParseDraft maps a draft name ("7", "draft7", "2020-12"...) to a draft.
func ParseDraft(s string) (*jsonschema.Draft, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "draft")
	key = strings.TrimPrefix(key, "-")
	if i := strings.IndexByte(key, '-'); i > 0 {
		key = key[:i]
	}
	d, ok := drafts[key]
	if !ok {
		return nil, rverrors.New(rverrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported draft %q, supported drafts: %v", s, SupportedDrafts()))
	}
	return d, nil
}

type options struct {
	draft *jsonschema.Draft
}

// Option configures schema compilation.
type Option func(*options)

// WithDefaultDraft sets the draft used when the schema declares no "$schema".
// Without it, draft 2020-12 applies.
func WithDefaultDraft(d *jsonschema.Draft) Option {
	return func(o *options) {
		if d != nil {
			o.draft = d
		}
	}
}

// Schema is a compiled JSON Schema together with its raw document.
type Schema struct {
	// Location is the URL the schema was compiled under.
	Location string

	// Raw is the decoded schema document.
	Raw any

	compiled *jsonschema.Schema
}

// Load reads, decodes and compiles the schema at path.
func Load(path string, opts ...Option) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rverrors.WrapWithContext(rverrors.ErrCodeNotFound, "schema file not found", err,
				map[string]any{"path": path})
		}
		return nil, rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to read schema file", err,
			map[string]any{"path": path})
	}

	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, rverrors.WrapWithContext(rverrors.ErrCodeParseFailed, "invalid JSON in schema file", err,
			map[string]any{"path": path})
	}

	loc, err := fileURL(path)
	if err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeIO, "failed to resolve schema path", err)
	}

	return Compile(raw, loc, opts...)
}

// Compile compiles a decoded schema document registered under location.
func Compile(raw any, location string, opts ...Option) (*Schema, error) {
	o := &options{draft: jsonschema.Draft2020}
	for _, opt := range opts {
		opt(o)
	}
	if location == "" {
		location = DefaultLocation
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(o.draft)
	c.UseRegexpEngine(compileSchemaRegexp)
	for _, name := range annotationFormats {
		c.RegisterFormat(&jsonschema.Format{Name: name, Validate: acceptAny})
	}

	if err := c.AddResource(location, raw); err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeSchemaInvalid, "failed to register schema", err)
	}

	compiled, err := c.Compile(location)
	if err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeSchemaInvalid, "failed to compile schema", err)
	}

	slog.Debug("compiled schema", "location", location)

	return &Schema{Location: location, Raw: raw, compiled: compiled}, nil
}

// Issue is a single leaf validation error.
type Issue struct {
	// InstanceLocation is the JSON pointer of the offending document value.
	InstanceLocation string `json:"instanceLocation" yaml:"instanceLocation"`

	// KeywordLocation is the JSON pointer of the failing keyword, relative to SchemaURL.
	KeywordLocation string `json:"keywordLocation" yaml:"keywordLocation"`

	// SchemaURL is the absolute location of the subschema holding the keyword.
	SchemaURL string `json:"schemaURL,omitempty" yaml:"schemaURL,omitempty"`

	// Message describes the failure.
	Message string `json:"message" yaml:"message"`
}

// String renders the issue as "at '<instance>': <message>".
func (i Issue) String() string {
	return fmt.Sprintf("at '%s': %s", i.InstanceLocation, i.Message)
}

// ValidationFailure is returned by Validate when the instance does not
// conform to the schema.
type ValidationFailure struct {
	Issues []Issue

	cause *jsonschema.ValidationError
}

// Error lists every issue on its own line.
func (f *ValidationFailure) Error() string {
	lines := make([]string, 0, len(f.Issues)+1)
	lines = append(lines, "document does not conform to schema:")
	for _, issue := range f.Issues {
		lines = append(lines, "- "+issue.String())
	}
	return strings.Join(lines, "\n")
}

// Unwrap returns the underlying schema library error.
func (f *ValidationFailure) Unwrap() error {
	if f.cause == nil {
		return nil
	}
	return f.cause
}

// Validate validates v, which must be in the JSON data model. It returns
// nil, a *ValidationFailure, or another error when validation could not run.
func (s *Schema) Validate(v any) error {
	if s == nil || s.compiled == nil {
		return rverrors.New(rverrors.ErrCodeInternal, "schema not compiled")
	}

	err := s.compiled.Validate(v)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return rverrors.Wrap(rverrors.ErrCodeValidation, "schema validation could not run", err)
	}

	printer := message.NewPrinter(language.English)
	failure := &ValidationFailure{cause: ve}
	collectIssues(ve, printer, &failure.Issues)
	return failure
}

// collectIssues flattens the error tree into its leaves.
func collectIssues(ve *jsonschema.ValidationError, p *message.Printer, out *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			collectIssues(cause, p, out)
		}
		return
	}

	*out = append(*out, Issue{
		InstanceLocation: jsonPointer(ve.InstanceLocation),
		KeywordLocation:  jsonPointer(ve.ErrorKind.KeywordPath()),
		SchemaURL:        ve.SchemaURL,
		Message:          ve.ErrorKind.LocalizedString(p),
	})
}

func jsonPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~", "~0")
		tok = strings.ReplaceAll(tok, "/", "~1")
		b.WriteByte('/')
		b.WriteString(tok)
	}
	return b.String()
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
