package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExplanationRequestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"invalid json", `{"codeLine": `, ErrInvalidJSON},
		{"empty string body", ``, ErrInvalidJSON},
		{"plain text body", `not json`, ErrInvalidJSON},
		{"null body", `null`, ErrEmptyBody},
		{"empty object", `{}`, ErrEmptyBody},
		{"no code payload", `{"language": "Korean"}`, ErrMissingCodePayload},
		{"empty codeLine only", `{"codeLine": ""}`, ErrMissingCodePayload},
		{"codeLines not an array", `{"codeLines": "a=1"}`, ErrInvalidCodeLines},
		{"codeLines number", `{"codeLines": 42}`, ErrInvalidCodeLines},
		{"codeLines empty array", `{"codeLines": []}`, ErrInvalidCodeLines},
		{"codeLines non-string elements", `{"codeLines": [1, 2]}`, ErrInvalidCodeLines},
		{"empty codeLines rejected despite codeLine", `{"codeLines": [], "codeLine": "x"}`, ErrInvalidCodeLines},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseExplanationRequest([]byte(tt.body))
			assert.Nil(t, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseExplanationRequestSingleLine(t *testing.T) {
	req, err := ParseExplanationRequest([]byte(`{"codeLine": "x = x + 1", "language": "Korean"}`))
	require.NoError(t, err)

	assert.False(t, req.Multi())
	assert.Equal(t, "x = x + 1", req.CodeLine)
	assert.Equal(t, "Korean", req.Language)
}

func TestParseExplanationRequestDefaultsLanguage(t *testing.T) {
	req, err := ParseExplanationRequest([]byte(`{"codeLine": "x"}`))
	require.NoError(t, err)
	assert.Equal(t, "English", req.Language)

	// non-string language is ignored, not an error
	req, err = ParseExplanationRequest([]byte(`{"codeLine": "x", "language": 7}`))
	require.NoError(t, err)
	assert.Equal(t, "English", req.Language)
}

func TestParseExplanationRequestMultiLine(t *testing.T) {
	req, err := ParseExplanationRequest([]byte(`{"codeLines": ["a=1", "b=2"]}`))
	require.NoError(t, err)

	assert.True(t, req.Multi())
	assert.Equal(t, []string{"a=1", "b=2"}, req.CodeLines)
}

func TestParseExplanationRequestCodeLinesTakePrecedence(t *testing.T) {
	req, err := ParseExplanationRequest([]byte(`{"codeLine": "x", "codeLines": ["a=1"]}`))
	require.NoError(t, err)
	assert.True(t, req.Multi())
}

func TestParseExplanationRequestNullCodeLinesIsAbsent(t *testing.T) {
	req, err := ParseExplanationRequest([]byte(`{"codeLine": "x", "codeLines": null}`))
	require.NoError(t, err)
	assert.False(t, req.Multi())

	_, err = ParseExplanationRequest([]byte(`{"codeLines": null}`))
	assert.ErrorIs(t, err, ErrMissingCodePayload)
}
