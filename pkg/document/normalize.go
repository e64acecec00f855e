package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Normalize converts decoder output into the JSON data model: maps with
// string keys, []any, string, bool, nil and json.Number. Non-finite floats
// are returned unchanged.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, json.Number:
		return t, nil

	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil

	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key := fmt.Sprint(k)
			n, err := Normalize(val)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = n
		}
		return out, nil

	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil

	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			n, err := Normalize(val)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil

	case int:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(t, 10)), nil

	case float32:
		return normalizeFloat(float64(t)), nil
	case float64:
		return normalizeFloat(t), nil

	case time.Time:
		return t.Format(time.RFC3339Nano), nil

	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func normalizeFloat(f float64) any {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return f
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}
