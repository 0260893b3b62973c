package srcfix

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapCallback(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		spec    FunctionSpec
		want    string
		applied bool
	}{
		{
			name:    "wraps a plain async callback",
			input:   "const loadX = async () => { fetchA(); };",
			spec:    FunctionSpec{Name: "loadX", Deps: []string{"userId"}},
			want:    "const loadX = useCallback(async () => { fetchA(); }, [userId]);",
			applied: true,
		},
		{
			name:    "multiple deps",
			input:   "const loadAnalytics = async () => { await fetch(url); };",
			spec:    FunctionSpec{Name: "loadAnalytics", Deps: []string{"groupId", "timeRange"}},
			want:    "const loadAnalytics = useCallback(async () => { await fetch(url); }, [groupId, timeRange]);",
			applied: true,
		},
		{
			name:    "parameter list carried over",
			input:   "const loadUsers = async (ids, limit) => { fetchUsers(ids, limit); };",
			spec:    FunctionSpec{Name: "loadUsers", Deps: []string{"userIds"}},
			want:    "const loadUsers = useCallback(async (ids, limit) => { fetchUsers(ids, limit); }, [userIds]);",
			applied: true,
		},
		{
			name:    "nested braces in body",
			input:   "const load = async () => { if (x) { a(); } else { b(); } };",
			spec:    FunctionSpec{Name: "load", Deps: []string{"x"}},
			want:    "const load = useCallback(async () => { if (x) { a(); } else { b(); } }, [x]);",
			applied: true,
		},
		{
			name:    "name absent",
			input:   "const other = async () => { n(); };",
			spec:    FunctionSpec{Name: "loadX", Deps: []string{"a"}},
			want:    "const other = async () => { n(); };",
			applied: false,
		},
		{
			name:    "already wrapped is left alone",
			input:   "const loadX = useCallback(async () => { fetchA(); }, [userId]);",
			spec:    FunctionSpec{Name: "loadX", Deps: []string{"userId"}},
			want:    "const loadX = useCallback(async () => { fetchA(); }, [userId]);",
			applied: false,
		},
		{
			name:    "unbalanced body aborts this spec",
			input:   "const loadX = async () => { fetchA();",
			spec:    FunctionSpec{Name: "loadX", Deps: []string{"userId"}},
			want:    "const loadX = async () => { fetchA();",
			applied: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied := WrapCallback(tt.input, tt.spec)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.applied, applied)
		})
	}
}

func TestWrapCallback_RewrapGuard(t *testing.T) {
	input := "const loadX = async () => { fetchA(); };"
	spec := FunctionSpec{Name: "loadX", Deps: []string{"userId"}}

	once, applied := WrapCallback(input, spec)
	require.True(t, applied)

	twice, applied := WrapCallback(once, spec)
	assert.False(t, applied)
	assert.Equal(t, once, twice)
}

func TestWrapCallback_TerminatorNotDoubled(t *testing.T) {
	input := "const a = 1;\nconst loadX = async () => { go(); };\nconst b = 2;"
	got, applied := WrapCallback(input, FunctionSpec{Name: "loadX", Deps: []string{"id"}})
	require.True(t, applied)
	assert.NotContains(t, got, ";;")
	assert.Contains(t, got, "const loadX = useCallback(async () => { go(); }, [id]);\n")
	assert.True(t, strings.HasPrefix(got, "const a = 1;\n"))
	assert.True(t, strings.HasSuffix(got, "\nconst b = 2;"))
}

func TestWrapCallback_SurroundingTextPreserved(t *testing.T) {
	input := "import React from 'react';\n\nconst loadX = async () => { fetchA(); };\n\nexport default loadX;\n"
	got, applied := WrapCallback(input, FunctionSpec{Name: "loadX", Deps: nil})
	require.True(t, applied)
	assert.Contains(t, got, "import React from 'react';")
	assert.Contains(t, got, "export default loadX;")
	assert.Contains(t, got, "const loadX = useCallback(async () => { fetchA(); }, []);")
}
