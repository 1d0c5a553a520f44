package entity

import (
	"encoding/json"
)

// ValidationError is a client-side request error. The transport layer
// maps it to HTTP 400 without a traceback.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

var (
	ErrInvalidJSON        = newValidationError("Invalid JSON in request body")
	ErrEmptyBody          = newValidationError("Request body is required")
	ErrMissingCodePayload = newValidationError("codeLine or codeLines parameter is required")
	ErrInvalidCodeLines   = newValidationError("codeLines must be a non-empty array")
)

// ExplanationRequest is the body of POST /code_ai_interpreter.
// CodeLines takes precedence over CodeLine when both are present.
type ExplanationRequest struct {
	CodeLine  string   `json:"codeLine,omitempty"`
	CodeLines []string `json:"codeLines,omitempty"`
	Language  string   `json:"language,omitempty"`
}

// Multi reports whether the request selects multi-line mode.
func (r *ExplanationRequest) Multi() bool {
	return len(r.CodeLines) > 0
}

// ParseExplanationRequest decodes and validates a raw JSON body.
// Code content is opaque text; nothing beyond presence is checked.
func ParseExplanationRequest(body []byte) (*ExplanationRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrInvalidJSON
	}
	if len(fields) == 0 {
		return nil, ErrEmptyBody
	}

	req := &ExplanationRequest{Language: "English"}

	if raw, ok := fields["language"]; ok {
		var lang string
		if err := json.Unmarshal(raw, &lang); err == nil && lang != "" {
			req.Language = lang
		}
	}

	// Non-string codeLine is ignored rather than rejected; the payload
	// check below still fires when nothing usable remains.
	if raw, ok := fields["codeLine"]; ok {
		_ = json.Unmarshal(raw, &req.CodeLine)
	}

	if raw, ok := fields["codeLines"]; ok && string(raw) != "null" {
		var lines []string
		if err := json.Unmarshal(raw, &lines); err != nil {
			return nil, ErrInvalidCodeLines
		}
		if len(lines) == 0 {
			return nil, ErrInvalidCodeLines
		}
		req.CodeLines = lines
	}

	if len(req.CodeLines) == 0 && req.CodeLine == "" {
		return nil, ErrMissingCodePayload
	}

	return req, nil
}
