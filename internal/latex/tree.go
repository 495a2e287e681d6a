package latex

import "fmt"

// ConvertValue walks a decoded YAML value and returns a copy in which every
// string has been passed through Convert. Maps with non-string keys are
// normalized to map[string]any so templates can address them by field name.
// Numbers, booleans and nil are returned unchanged.
func ConvertValue(v any) any {
	switch val := v.(type) {
	case string:
		return Convert(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = ConvertValue(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = ConvertValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = ConvertValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = Convert(item)
		}
		return out
	default:
		return v
	}
}
