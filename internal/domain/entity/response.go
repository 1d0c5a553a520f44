package entity

// LineExplanation is one explained line of a multi-line request.
// LineNumber is 1-based and follows input order.
type LineExplanation struct {
	LineNumber  int    `json:"lineNumber"`
	Explanation string `json:"explanation"`
}

// SingleResponse is the single-line mode response body.
type SingleResponse struct {
	Explanation string `json:"explanation"`
}

// MultiResponse is the multi-line mode response body.
type MultiResponse struct {
	Explanations []LineExplanation `json:"explanations"`
}

// ErrorResponse is the body of every non-200 response. Traceback is
// only set for server-side failures.
type ErrorResponse struct {
	Error     string `json:"error"`
	Traceback string `json:"traceback,omitempty"`
}
