package manifest

import (
	"sort"
	"strconv"
	"strings"
)

// sortedDependencies orders Dependency_N keys numerically.
func sortedDependencies(deps map[string]string) []string {
	if len(deps) == 0 {
		return nil
	}
	keys := make([]string, 0, len(deps))
	for k := range deps {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iok := dependencyIndex(keys[i])
		nj, jok := dependencyIndex(keys[j])
		if iok && jok {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, deps[k])
	}
	return out
}

func dependencyIndex(key string) (int, bool) {
	_, num, ok := strings.Cut(key, "_")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(num)
	return n, err == nil
}
