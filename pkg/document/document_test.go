package document

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

const conditionsTOML = `
[caller_settings]
config_name = "dna_r9.4.1_450bps_fast"
port = 5555

[conditions]
reference = "/data/hg38.mmi"

[conditions.2]
name = "select_barcodes"
control = false
min_chunks = 0
max_chunks = 4.5
targets = "targets.txt"

[conditions.10]
name = "inline"
targets = ["chr21", "chr22"]

[conditions.1]
name = "first_written_last"
targets = { file = "x" }
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "experiment.toml", conditionsTOML)

	doc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, doc.Path)
	assert.Equal(t, FormatTOML, doc.Format)

	settings := doc.Data["caller_settings"].(map[string]any)
	assert.Equal(t, json.Number("5555"), settings["port"])

	conds := doc.Conditions()
	require.Len(t, conds, 4)

	ids := make([]string, len(conds))
	for i, c := range conds {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"reference", "2", "10", "1"}, ids, "conditions keep source order")

	assert.Nil(t, conds[0].Fields, "non-table entries have no fields")

	p, ok := conds[1].TargetsPath()
	assert.True(t, ok)
	assert.Equal(t, "targets.txt", p)
	assert.Equal(t, json.Number("4.5"), conds[1].Fields["max_chunks"])

	_, ok = conds[2].TargetsPath()
	assert.False(t, ok, "list targets are not a path")
	v, ok := conds[2].Targets()
	assert.True(t, ok)
	assert.Equal(t, []any{"chr21", "chr22"}, v)

	_, ok = conds[3].TargetsPath()
	assert.False(t, ok, "inline table targets are not a path")
}

func TestLoad_YAMLKeepsOrder(t *testing.T) {
	path := writeFile(t, "experiment.yaml", `
conditions:
  "3":
    targets: b.txt
  "1":
    targets: a.txt
    min_chunks: 2
`)

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format)

	conds := doc.Conditions()
	require.Len(t, conds, 2)
	assert.Equal(t, "3", conds[0].ID)
	assert.Equal(t, "1", conds[1].ID)
	assert.Equal(t, json.Number("2"), conds[1].Fields["min_chunks"])
}

func TestLoad_JSONNaturalOrder(t *testing.T) {
	path := writeFile(t, "experiment.json", `{"conditions": {"10": {"targets": []}, "2": {}, "ref": "x"}}`)

	doc, err := Load(path)
	require.NoError(t, err)

	conds := doc.Conditions()
	require.Len(t, conds, 3)
	assert.Equal(t, "2", conds[0].ID)
	assert.Equal(t, "10", conds[1].ID)
	assert.Equal(t, "ref", conds[2].ID)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
		assert.Equal(t, rverrors.ErrCodeNotFound, rverrors.CodeOf(err))
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "[conditions\nname = 1\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, rverrors.ErrCodeParseFailed, rverrors.CodeOf(err))
		assert.Contains(t, err.Error(), "invalid TOML")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"conditions": `)
		_, err := Load(path)
		require.Error(t, err)
		assert.Equal(t, rverrors.ErrCodeParseFailed, rverrors.CodeOf(err))
	})

	t.Run("non-mapping root", func(t *testing.T) {
		path := writeFile(t, "list.yaml", "- a\n- b\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "document root must be a mapping")
	})
}

func TestParse_EmptyDocuments(t *testing.T) {
	for _, f := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			doc, err := Parse(nil, f)
			require.NoError(t, err)
			assert.Empty(t, doc.Data)
			assert.Nil(t, doc.Conditions())
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.toml":     FormatTOML,
		"a.TOML":     FormatTOML,
		"a.yml":      FormatYAML,
		"a.yaml":     FormatYAML,
		"a.json":     FormatJSON,
		"a":          FormatTOML,
		"a.conf":     FormatTOML,
		"dir/a.Json": FormatJSON,
	}
	for path, want := range tests {
		assert.Equal(t, want, FormatFromPath(path), path)
	}
}

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	in := map[string]any{
		"int":    int64(7),
		"float":  0.25,
		"inf":    math.Inf(1),
		"time":   ts,
		"tables": []map[string]any{{"a": 1}},
		"yaml":   map[any]any{1: "one"},
	}

	out, err := Normalize(in)
	require.NoError(t, err)

	m := out.(map[string]any)
	assert.Equal(t, json.Number("7"), m["int"])
	assert.Equal(t, json.Number("0.25"), m["float"])
	assert.True(t, math.IsInf(m["inf"].(float64), 1))
	assert.Equal(t, "2024-05-01T12:00:00Z", m["time"])
	assert.Equal(t, []any{map[string]any{"a": json.Number("1")}}, m["tables"])
	assert.Equal(t, map[string]any{"1": "one"}, m["yaml"])

	_, err = Normalize(struct{}{})
	assert.Error(t, err)
}

func TestSortNatural(t *testing.T) {
	ids := []string{"b", "10", "a", "2", "1"}
	SortNatural(ids)
	assert.Equal(t, []string{"1", "2", "10", "a", "b"}, ids)
}
