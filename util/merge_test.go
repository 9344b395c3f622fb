package util

import (
	"reflect"
	"testing"
)

func TestDeepMerge_NestedMapsMergeKeyByKey(t *testing.T) {
	base := map[string]any{"headers": map[string]any{"B": "2"}}
	call := map[string]any{"headers": map[string]any{"A": "1"}}

	got := DeepMerge(base, call)
	want := map[string]any{"headers": map[string]any{"A": "1", "B": "2"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %v, want %v", got, want)
	}
}

func TestDeepMerge_Table(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		override map[string]any
		want     map[string]any
	}{
		{
			name:     "override wins on scalars",
			base:     map[string]any{"cache": "default", "n": 1},
			override: map[string]any{"cache": "no-store"},
			want:     map[string]any{"cache": "no-store", "n": 1},
		},
		{
			name:     "deeply nested",
			base:     map[string]any{"a": map[string]any{"b": map[string]any{"c": 1, "d": 2}}},
			override: map[string]any{"a": map[string]any{"b": map[string]any{"c": 3}}},
			want:     map[string]any{"a": map[string]any{"b": map[string]any{"c": 3, "d": 2}}},
		},
		{
			name:     "map replaces scalar",
			base:     map[string]any{"a": "flat"},
			override: map[string]any{"a": map[string]any{"x": 1}},
			want:     map[string]any{"a": map[string]any{"x": 1}},
		},
		{
			name:     "scalar replaces map",
			base:     map[string]any{"a": map[string]any{"x": 1}},
			override: map[string]any{"a": "flat"},
			want:     map[string]any{"a": "flat"},
		},
		{
			name:     "nil override value ignored",
			base:     map[string]any{"a": 1},
			override: map[string]any{"a": nil},
			want:     map[string]any{"a": 1},
		},
		{
			name:     "string maps merge",
			base:     map[string]any{"h": map[string]string{"B": "2"}},
			override: map[string]any{"h": map[string]string{"A": "1"}},
			want:     map[string]any{"h": map[string]any{"A": "1", "B": "2"}},
		},
		{
			name:     "nil base",
			base:     nil,
			override: map[string]any{"a": 1},
			want:     map[string]any{"a": 1},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeepMerge(tc.base, tc.override); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("DeepMerge = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDeepMerge_DoesNotMutateInputs(t *testing.T) {
	inner := map[string]any{"B": "2"}
	base := map[string]any{"headers": inner}
	DeepMerge(base, map[string]any{"headers": map[string]any{"A": "1"}})
	if len(inner) != 1 {
		t.Errorf("base nested map was mutated: %v", inner)
	}
}

func TestDeepMerge_BothNil(t *testing.T) {
	if DeepMerge(nil, nil) != nil {
		t.Error("expected nil for two nil maps")
	}
}

func TestMergeStrings(t *testing.T) {
	got := MergeStrings(map[string]string{"A": "1", "B": "2"}, map[string]string{"A": "x"})
	want := map[string]string{"A": "x", "B": "2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MergeStrings = %v, want %v", got, want)
	}
	if MergeStrings(nil, nil) != nil {
		t.Error("expected nil for two nil maps")
	}
}
