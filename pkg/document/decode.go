package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/readuntil/ruvalidate/pkg/defaults"
	rverrors "github.com/readuntil/ruvalidate/pkg/errors"
)

// decodeTOML decodes a TOML document and returns the condition ids in the
// order the decoder saw them.
func decodeTOML(data []byte) (any, []string, error) {
	var root map[string]any
	md, err := toml.Decode(string(data), &root)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, nil, rverrors.WrapWithContext(rverrors.ErrCodeParseFailed, "invalid TOML",
				errors.New(perr.ErrorWithPosition()), map[string]any{"line": perr.Position.Line})
		}
		return nil, nil, rverrors.Wrap(rverrors.ErrCodeParseFailed, "invalid TOML", err)
	}

	var order []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != defaults.ConditionsKey || seen[key[1]] {
			continue
		}
		seen[key[1]] = true
		order = append(order, key[1])
	}

	return root, order, nil
}

// decodeYAML decodes a YAML document through the node tree so the order of
// the "conditions" keys is kept.
func decodeYAML(data []byte) (any, []string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, nil, rverrors.Wrap(rverrors.ErrCodeParseFailed, "invalid YAML", err)
	}
	if node.Kind == 0 {
		return nil, nil, nil
	}

	var root any
	if err := node.Decode(&root); err != nil {
		return nil, nil, rverrors.Wrap(rverrors.ErrCodeParseFailed, "invalid YAML", err)
	}

	return root, yamlConditionOrder(&node), nil
}

func yamlConditionOrder(node *yaml.Node) []string {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != defaults.ConditionsKey {
			continue
		}
		table := node.Content[i+1]
		if table.Kind != yaml.MappingNode {
			return nil
		}
		order := make([]string, 0, len(table.Content)/2)
		for j := 0; j+1 < len(table.Content); j += 2 {
			order = append(order, table.Content[j].Value)
		}
		return order
	}
	return nil
}

// decodeJSON uses the schema library's decoder so numbers arrive as
// json.Number, exactly as the validator expects them.
func decodeJSON(data []byte) (any, error) {
	root, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, rverrors.Wrap(rverrors.ErrCodeParseFailed, "invalid JSON", err)
	}
	return root, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
