package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/readuntil/ruvalidate/pkg/schema"
	"github.com/readuntil/ruvalidate/pkg/validator"
)

func sampleResult() *validator.ValidationResult {
	r := validator.NewValidationResult()
	r.Init(validator.Kind, validator.APIVersion, "v0.1.0")
	r.Source = validator.Source{Config: "experiment.toml", Schema: "file:///rules.schema.json"}
	r.Summary.Status = validator.ValidationStatusWarning
	r.Summary.SchemaValid = true
	r.Summary.Violations = 1
	r.Violations = append(r.Violations, validator.Violation{
		File: "targets.txt", Line: 2, Content: "bad-target", Condition: "1",
	})
	r.Skipped = append(r.Skipped, validator.SkippedTarget{Condition: "2", Reason: validator.SkipNotFilePath})
	return r
}

var samplePatterns = []schema.TargetPattern{
	{Source: schema.SourcePattern, Value: `^barcode\d+$`},
	{Source: schema.SourceConst, Value: "unclassified"},
}

func TestWriter_ResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatJSON, &buf).Serialize(context.Background(), sampleResult()))

	var got validator.ValidationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, validator.Kind, got.Kind.String())
	assert.Equal(t, validator.ValidationStatusWarning, got.Summary.Status)
	assert.Equal(t, sampleResult().Violations, got.Violations)
	assert.Equal(t, "v0.1.0", got.Metadata["version"])
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"), "json output ends with a newline")
}

func TestWriter_PatternsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(FormatYAML, &buf).Serialize(context.Background(), samplePatterns))

	assert.Contains(t, buf.String(), "- source: pattern\n")

	var got []schema.TargetPattern
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, samplePatterns, got)
}

func TestWriter_Table(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
		not  []string
	}{
		{
			name: "result",
			data: sampleResult(),
			want: []string{
				"FIELD", "VALUE",
				"kind", "ValidationResult",
				"summary.status", "warning",
				"violations[0].file", "targets.txt",
				"violations[0].line", "2",
				"skipped[0].reason", validator.SkipNotFilePath,
			},
			not: []string{"schemaErrors", "hints["},
		},
		{
			name: "patterns",
			data: samplePatterns,
			want: []string{"[0].source", "[0].value", `^barcode\d+$`, "[1].value", "unclassified"},
		},
		{
			name: "no patterns",
			data: []schema.TargetPattern{},
			want: []string{"FIELD", emptyValue},
		},
		{
			name: "violation",
			data: validator.Violation{File: "t.txt", Line: 7, Content: ""},
			want: []string{"content", "file", "t.txt", "line", "7", "condition"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), tt.data))

			out := buf.String()
			assert.True(t, strings.HasPrefix(out, "FIELD"), out)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, n := range tt.not {
				assert.NotContains(t, out, n)
			}
		})
	}
}

func TestWriter_TableKeysSorted(t *testing.T) {
	var buf bytes.Buffer
	v := validator.Violation{File: "t.txt", Line: 1, Content: "x", Condition: "3"}
	require.NoError(t, NewWriter(FormatTable, &buf).Serialize(context.Background(), v))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	var keys []string
	for _, l := range lines[1:] {
		keys = append(keys, strings.Fields(l)[0])
	}
	assert.Equal(t, []string{"condition", "content", "file", "line"}, keys)
}

func TestNewWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	require.NoError(t, w.Serialize(context.Background(), samplePatterns))

	var got []schema.TargetPattern
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, samplePatterns, got)
}

func TestWriter_SerializeCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, NewWriter(FormatJSON, &buf).Serialize(ctx, sampleResult()), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("stdout paths", func(t *testing.T) {
		for _, path := range []string{"", "  ", "\t", StdoutURI} {
			s, err := NewFileWriterOrStdout(FormatJSON, path)
			require.NoError(t, err, "path %q", path)
			c, ok := s.(Closer)
			require.True(t, ok)
			assert.NoError(t, c.Close(), "closing stdout is a no-op")
		}
	})

	t.Run("report file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		s, err := NewFileWriterOrStdout(FormatYAML, path)
		require.NoError(t, err)
		require.NoError(t, s.Serialize(context.Background(), sampleResult()))

		c := s.(Closer)
		require.NoError(t, c.Close())
		assert.NoError(t, c.Close(), "second Close is a no-op")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got validator.ValidationResult
		require.NoError(t, yaml.Unmarshal(data, &got))
		assert.Equal(t, "bad-target", got.Violations[0].Content)
	})

	t.Run("missing directory", func(t *testing.T) {
		s, err := NewFileWriterOrStdout(FormatJSON, filepath.Join(t.TempDir(), "missing", "report.json"))
		require.Error(t, err)
		assert.Nil(t, s)
		assert.Contains(t, err.Error(), "failed to create output file")
	})
}

func TestFormat(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())

	for _, f := range SupportedFormats() {
		assert.False(t, Format(f).IsUnknown(), f)
	}
	for _, f := range []Format{"", "text", "xml"} {
		assert.True(t, f.IsUnknown(), string(f))
	}

	paths := map[string]Format{
		"report.json":  FormatJSON,
		"report.yaml":  FormatYAML,
		"report.YML":   FormatYAML,
		"report.txt":   FormatTable,
		"report.table": FormatTable,
		"report":       FormatJSON,
	}
	for path, want := range paths {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}
