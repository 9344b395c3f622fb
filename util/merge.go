package util

// DeepMerge merges override onto base and returns a new map. Neither input is
// modified.
//
// When both sides hold a nested map under the same key the two maps are merged
// recursively, key by key. Any other conflict is resolved in favour of
// override. Nil values in override are ignored so an unset call-level value
// never erases a configured one.
func DeepMerge(base, override map[string]any) map[string]any {
	if base == nil && override == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = cloneValue(v)
	}
	for k, v := range override {
		if v == nil {
			continue
		}
		if existing, ok := out[k]; ok {
			if bm, ok := asMap(existing); ok {
				if om, ok := asMap(v); ok {
					out[k] = DeepMerge(bm, om)
					continue
				}
			}
		}
		out[k] = cloneValue(v)
	}
	return out
}

// MergeStrings returns a new map holding base overlaid with override.
func MergeStrings(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// asMap normalizes the nested map shapes DeepMerge recurses into.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

func cloneValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return DeepMerge(m, nil)
	}
	return v
}
