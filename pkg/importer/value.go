package importer

import "strconv"

// Helpers for walking a generically parsed document tree. YAML parsing
// yields int for integer scalars while JSON yields float64, so numeric
// accessors accept both.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// getMap returns m[key] as a map, or nil.
func getMap(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	return asMap(m[key])
}

// getString returns m[key] as a string, or the empty string.
func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	return asString(m[key])
}

// getBool returns m[key] as a bool, or false.
func getBool(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

// getInt returns m[key] as an int when it holds any numeric type.
func getInt(m map[string]any, key string) (int, bool) {
	if m == nil {
		return 0, false
	}
	switch n := m[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// getFloat returns m[key] as a float64 when it holds any numeric type.
func getFloat(m map[string]any, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch n := m[key].(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// numberString formats a numeric tree value for embedding in a
// placeholder specifier.
func numberString(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return ""
	}
}
