package document

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/readuntil/ruvalidate/pkg/defaults"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

// Format is the on-disk encoding of a configuration document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the decoder from the file extension. Anything that
// is not YAML or JSON is read as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Document is a loaded, normalized configuration document.
type Document struct {
	// Path is the file the document was read from, if any.
	Path string

	// Format is the encoding the document was decoded from.
	Format Format

	// Data is the normalized document root.
	Data map[string]any

	// conditionOrder is the source order of condition ids, when known.
	conditionOrder []string
}

// Condition is one entry of the "conditions" table.
type Condition struct {
	// ID is the key under "conditions".
	ID string

	// Value is the raw normalized value.
	Value any

	// Fields is Value as a mapping, or nil when Value is not a mapping.
	Fields map[string]any
}

// Targets returns the condition's "targets" value.
func (c Condition) Targets() (any, bool) {
	if c.Fields == nil {
		return nil, false
	}
	v, ok := c.Fields[defaults.TargetsKey]
	return v, ok
}

// TargetsPath returns the "targets" value when it is a string, which is the
// form used to reference an external target list file.
func (c Condition) TargetsPath() (string, bool) {
	v, ok := c.Targets()
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rverrors.WrapWithContext(rverrors.ErrCodeNotFound, "configuration file not found", err,
				map[string]any{"path": path})
		}
		return nil, rverrors.WrapWithContext(rverrors.ErrCodeIO, "failed to read configuration file", err,
			map[string]any{"path": path})
	}

	doc, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	doc.Path = path

	slog.Debug("loaded configuration document",
		"path", path,
		"format", doc.Format,
		"conditions", len(doc.conditionKeys()))

	return doc, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		root  any
		order []string
		err   error
	)

	switch format {
	case FormatTOML:
		root, order, err = decodeTOML(data)
	case FormatYAML:
		root, order, err = decodeYAML(data)
	case FormatJSON:
		root, err = decodeJSON(data)
	default:
		return nil, rverrors.New(rverrors.ErrCodeInvalidRequest, fmt.Sprintf("unsupported document format %q", format))
	}
	if err != nil {
		return nil, err
	}

	normalized, err := Normalize(root)
	if err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeParseFailed, "failed to normalize document", err)
	}

	var m map[string]any
	switch v := normalized.(type) {
	case nil:
		m = map[string]any{}
	case map[string]any:
		m = v
	default:
		return nil, rverrors.New(rverrors.ErrCodeParseFailed,
			fmt.Sprintf("document root must be a mapping, got %s", typeName(v)))
	}

	return &Document{Format: format, Data: m, conditionOrder: order}, nil
}

// ConditionsTable returns the "conditions" mapping, or nil when it is
// absent or not a mapping.
func (d *Document) ConditionsTable() map[string]any {
	if d == nil || d.Data == nil {
		return nil
	}
	m, _ := d.Data[defaults.ConditionsKey].(map[string]any)
	return m
}

// Conditions returns every entry of the "conditions" table in source order.
// Entries that are not mappings (for example a shared "reference" string)
// are included with a nil Fields.
func (d *Document) Conditions() []Condition {
	table := d.ConditionsTable()
	if table == nil {
		return nil
	}

	keys := d.conditionKeys()
	out := make([]Condition, 0, len(keys))
	for _, k := range keys {
		v := table[k]
		fields, _ := v.(map[string]any)
		out = append(out, Condition{ID: k, Value: v, Fields: fields})
	}
	return out
}

// conditionKeys merges the recorded source order with the table's actual
// keys, so keys the decoder did not report still appear (sorted, at the end).
func (d *Document) conditionKeys() []string {
	table := d.ConditionsTable()
	if table == nil {
		return nil
	}

	seen := make(map[string]bool, len(table))
	keys := make([]string, 0, len(table))
	for _, k := range d.conditionOrder {
		if _, ok := table[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	var rest []string
	for k := range table {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	SortNatural(rest)

	return append(keys, rest...)
}

// SortNatural sorts ids so that numeric ids come first in numeric order,
// followed by the remaining ids in lexical order.
func SortNatural(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aErr := strconv.ParseUint(ids[i], 10, 64)
		b, bErr := strconv.ParseUint(ids[j], 10, 64)
		switch {
		case aErr == nil && bErr == nil:
			if a != b {
				return a < b
			}
			return ids[i] < ids[j]
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return ids[i] < ids[j]
		}
	})
}
