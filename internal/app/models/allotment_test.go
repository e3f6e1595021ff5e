package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllotmentPolicy_Apply(t *testing.T) {
	tests := []struct {
		name      string
		policy    AllotmentPolicy
		existing  []int64
		requested []int64
		want      []int64
	}{
		{name: "merge into empty", policy: MergePolicy, requested: []int64{1, 2}, want: []int64{1, 2}},
		{name: "merge keeps stored ids", policy: MergePolicy, existing: []int64{1}, requested: []int64{2}, want: []int64{1, 2}},
		{name: "merge ignores repeats", policy: MergePolicy, existing: []int64{3, 1}, requested: []int64{1, 3, 4, 4}, want: []int64{3, 1, 4}},
		{name: "merge with nothing requested", policy: MergePolicy, existing: []int64{5}, want: []int64{5}},
		{name: "replace drops stored ids", policy: ReplacePolicy, existing: []int64{1, 2}, requested: []int64{2}, want: []int64{2}},
		{name: "replace dedupes request", policy: ReplacePolicy, existing: []int64{9}, requested: []int64{4, 4, 3}, want: []int64{4, 3}},
		{name: "replace with empty request", policy: ReplacePolicy, existing: []int64{1}, requested: []int64{}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Apply(tt.existing, tt.requested))
		})
	}
}

func TestAllotmentPolicy_ApplyDoesNotAliasInput(t *testing.T) {
	existing := []int64{1, 2}
	got := MergePolicy.Apply(existing, []int64{3})
	got[0] = 42

	assert.Equal(t, []int64{1, 2}, existing)
}

func TestAllotmentPolicy_String(t *testing.T) {
	assert.Equal(t, "merge", MergePolicy.String())
	assert.Equal(t, "replace", ReplacePolicy.String())
	assert.Equal(t, "unknown", AllotmentPolicy(7).String())
}

func TestDepartment_IsValid(t *testing.T) {
	for _, d := range Departments {
		assert.True(t, d.IsValid(), string(d))
	}
	assert.False(t, Department("EEE").IsValid())
	assert.False(t, Department("cse").IsValid())
}
