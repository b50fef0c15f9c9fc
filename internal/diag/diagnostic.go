package diag

import (
	"strings"

	"lwfront/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is one finding. For syntax errors Expected lists what the
// grammar would have accepted and Found names the offending token.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Expected []string
	Found    string
	Notes    []Note
	Fixes    []Fix
}

// ExpectedText joins Expected the way messages print it:
// "a", "a or b", "a, b or c".
func (d Diagnostic) ExpectedText() string {
	return JoinAlternatives(d.Expected)
}

// JoinAlternatives renders a list of alternatives for a message.
func JoinAlternatives(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
