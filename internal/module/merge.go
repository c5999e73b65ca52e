package module

// MergeOverrides recursively merges overrides into base and returns base.
// Override values win on conflicting keys; nested maps merge recursively;
// anything else is replaced. Override values are deep-copied so later
// mutation of the override document cannot reach into module configuration.
func MergeOverrides(base, overrides map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any)
	}
	if overrides == nil {
		return base
	}

	for key, ov := range overrides {
		bv, exists := base[key]
		if !exists {
			base[key] = cloneValue(ov)
			continue
		}

		ovMap, ovIsMap := ov.(map[string]any)
		bvMap, bvIsMap := bv.(map[string]any)
		if ovIsMap && bvIsMap {
			base[key] = MergeOverrides(bvMap, ovMap)
		} else {
			base[key] = cloneValue(ov)
		}
	}

	return base
}

// cloneValue creates a deep copy of a value.
func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return cloneMap(v)
	case []any:
		return cloneSlice(v)
	default:
		return val
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = cloneValue(v)
	}
	return out
}
