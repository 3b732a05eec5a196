package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolverResolve(t *testing.T) {
	doc := map[string]any{
		"components": map[string]any{
			"schemas": map[string]any{
				"Candidate": map[string]any{"type": "object"},
			},
		},
	}
	r := NewResolver(doc)

	tests := []struct {
		name string
		ref  string
		want map[string]any
	}{
		{"existing ref", "#/components/schemas/Candidate", map[string]any{"type": "object"}},
		{"missing segment", "#/components/schemas/Missing", nil},
		{"missing root", "#/definitions/Candidate", nil},
		{"cross-document ref", "other.yaml#/components/schemas/Candidate", nil},
		{"empty ref", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.ref))
		})
	}
}

func TestResolverIsStateless(t *testing.T) {
	doc := map[string]any{"a": map[string]any{"b": map[string]any{"x": "y"}}}
	r := NewResolver(doc)

	first := r.Resolve("#/a/b")
	second := r.Resolve("#/a/b")
	assert.Equal(t, first, second)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat(`  {"openapi": "3.0.0"}`))
	assert.Equal(t, FormatYAML, DetectFormat("openapi: 3.0.0\n"))
	assert.Equal(t, FormatYAML, DetectFormat(""))
}
