package descriptor

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case Props:
		return map[string]any(v), v != nil
	case map[string]any:
		return v, v != nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[fmt.Sprint(key)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = entry
		}
		return out
	case []Props:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = entry
		}
		return out
	case []Descriptor:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = entry
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = entry
		}
		return out
	default:
		return nil
	}
}

// stringOf renders scalars as text. Nil and composite values become "".
func stringOf(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any, []any, Props:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// finiteNumber reports the numeric value of a number or numeric string. NaN
// and infinities are rejected.
func finiteNumber(value any) (float64, bool) {
	var out float64
	switch v := value.(type) {
	case float64:
		out = v
	case float32:
		out = float64(v)
	case int:
		out = float64(v)
	case int64:
		out = float64(v)
	case uint64:
		out = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}
