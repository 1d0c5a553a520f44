package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interpreter/internal/domain/entity"
)

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "bare array",
			text: `[{"lineNumber":1,"explanation":"x"}]`,
			want: `[{"lineNumber":1,"explanation":"x"}]`,
			ok:   true,
		},
		{
			name: "array inside prose",
			text: "Sure! Here is the result:\n[1, 2]\nHope that helps.",
			want: "[1, 2]",
			ok:   true,
		},
		{
			name: "array inside markdown fence",
			text: "```json\n[\n  {\"lineNumber\": 1, \"explanation\": \"x\"}\n]\n```",
			want: "[\n  {\"lineNumber\": 1, \"explanation\": \"x\"}\n]",
			ok:   true,
		},
		{
			name: "bracket inside string does not close span",
			text: `[{"explanation": "array access a[0]"}] trailing`,
			want: `[{"explanation": "array access a[0]"}]`,
			ok:   true,
		},
		{
			name: "escaped quote inside string",
			text: `[{"explanation": "say \"]\" here"}]`,
			want: `[{"explanation": "say \"]\" here"}]`,
			ok:   true,
		},
		{
			name: "nested arrays stay balanced",
			text: `x [[1], [2]] y`,
			want: `[[1], [2]]`,
			ok:   true,
		},
		{name: "no array", text: "just prose", ok: false},
		{name: "unterminated array", text: `[{"lineNumber": 1`, ok: false},
		{name: "empty text", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONArray(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBatchExplanationsSuccess(t *testing.T) {
	raw := `Here you go:
[
  {"lineNumber": 1, "explanation": "Sets a to 1."},
  {"lineNumber": 2, "explanation": "Sets b to 2."}
]`
	got, ok := parseBatchExplanations(raw, 2)
	require.True(t, ok)
	assert.Equal(t, []entity.LineExplanation{
		{LineNumber: 1, Explanation: "Sets a to 1."},
		{LineNumber: 2, Explanation: "Sets b to 2."},
	}, got)
}

func TestParseBatchExplanationsReindexesByPosition(t *testing.T) {
	raw := `[{"lineNumber": 9, "explanation": "first"}, {"lineNumber": 1, "explanation": "second"}]`

	got, ok := parseBatchExplanations(raw, 2)
	require.True(t, ok)
	assert.Equal(t, 1, got[0].LineNumber)
	assert.Equal(t, "first", got[0].Explanation)
	assert.Equal(t, 2, got[1].LineNumber)
	assert.Equal(t, "second", got[1].Explanation)
}

func TestParseBatchExplanationsFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		n    int
	}{
		{"plain prose", "These lines assign values to variables.", 2},
		{"empty response", "", 2},
		{"bad json in span", `[{"lineNumber": 1 "explanation": "x"}]`, 1},
		{"length mismatch short", `[{"lineNumber": 1, "explanation": "x"}]`, 2},
		{"length mismatch long", `[{"lineNumber":1,"explanation":"x"},{"lineNumber":2,"explanation":"y"}]`, 1},
		{"empty array", `[]`, 2},
		{"wrong element shape", `[{"line": 1, "text": "x"}]`, 1},
		{"non-object elements", `[1, 2]`, 2},
		{"lineNumber not an int", `[{"lineNumber": "1", "explanation": "x"}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBatchExplanations(tt.raw, tt.n)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}
