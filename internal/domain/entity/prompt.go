package entity

import (
	"fmt"
	"strings"
)

const singleLineTemplate = "Explain the following code in %[1]s briefly in 1-2 sentences. Respond only in %[1]s:\n%[2]s"

const multiLineTemplate = `Explain each line of the following code in %[1]s, briefly in 1-2 sentences per line. Respond only in %[1]s.

Code:
%[2]s

Response format (JSON array):
[
  {"lineNumber": 1, "explanation": "explanation of the first line (in %[1]s)"},
  {"lineNumber": 2, "explanation": "explanation of the second line (in %[1]s)"},
  ...
]

Important: write every explanation in %[1]s and return only the JSON array. Do not add any other text or comments.`

// SingleLinePrompt builds the prompt for explaining one code line in
// the given display language.
func SingleLinePrompt(codeLine, languageName string) string {
	return fmt.Sprintf(singleLineTemplate, languageName, codeLine)
}

// MultiLinePrompt numbers the input lines and builds the batch prompt
// requesting a JSON array of {lineNumber, explanation} objects.
func MultiLinePrompt(codeLines []string, languageName string) string {
	numbered := make([]string, len(codeLines))
	for i, line := range codeLines {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, line)
	}
	return fmt.Sprintf(multiLineTemplate, languageName, strings.Join(numbered, "\n"))
}
