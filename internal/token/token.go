package token

import (
	"lwfront/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsPunctOrOp() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Describe renders the token for "found ..." diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case Ident:
		return "identifier '" + t.Text + "'"
	case IntLit, FloatLit:
		return t.Kind.Describe() + " " + t.Text
	case StringLit:
		return "string literal " + t.Text
	default:
		return t.Kind.Describe()
	}
}
