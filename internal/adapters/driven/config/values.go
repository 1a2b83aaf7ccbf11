// Package config holds the dotted-key value map shared by the config store
// adapters.
package config

import (
	"maps"
	"slices"
	"strings"
)

// Values maps dotted keys such as "llm.provider" to scalar values.
type Values map[string]any

// String returns the string at key, or "" when absent or not a string.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Float returns the number at key. TOML decodes integers as int64.
func (v Values) Float(key string) float64 {
	switch n := v[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

// Int returns the number at key, truncated.
func (v Values) Int(key string) int {
	return int(v.Float(key))
}

// Keys returns the keys in sorted order.
func (v Values) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	return maps.Clone(v)
}

// Flatten turns nested tables into dotted keys:
// {"llm": {"burst": 3}} becomes {"llm.burst": 3}.
func Flatten(nested map[string]any) Values {
	out := Values{}
	flattenInto(out, "", nested)
	return out
}

func flattenInto(out Values, prefix string, nested map[string]any) {
	for k, val := range nested {
		if prefix != "" {
			k = prefix + "." + k
		}
		if table, ok := val.(map[string]any); ok {
			flattenInto(out, k, table)
			continue
		}
		out[k] = val
	}
}

// Nest is the inverse of Flatten.
func (v Values) Nest() map[string]any {
	root := map[string]any{}
	for key, val := range v {
		parts := strings.Split(key, ".")
		table := root
		for _, p := range parts[:len(parts)-1] {
			next, ok := table[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				table[p] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = val
	}
	return root
}
