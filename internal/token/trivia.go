package token

import "lwfront/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	default:
		return "TriviaKind(?)"
	}
}

// Trivia is skipped text (whitespace, comments) attached to the next token.
// The parser never looks at it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
