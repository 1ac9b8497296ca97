package utils

import (
	"maps"
	"slices"
)

// MergeEnv merges multiple variable maps with later maps having higher precedence.
// Returns KEY=VALUE entries sorted by key. Keys with empty values are dropped.
func MergeEnv(vv ...map[string]string) []string {
	m := map[string]string{}
	for _, v := range vv {
		maps.Copy(m, v)
	}

	var results []string
	for _, k := range slices.Sorted(maps.Keys(m)) {
		v := m[k]
		if v == "" {
			continue
		}
		results = append(results, k+"="+v)
	}

	return results
}
