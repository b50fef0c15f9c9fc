package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// Lexer turns the bytes of one file into significant tokens on demand.
// The first lexical error is reported once and yields a token.Invalid;
// every later call returns EOF.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // накопленные leading trivia
	tail   []token.Trivia // trivia между последним токеном и EOF
	failed bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tail returns the trivia after the last significant token. It is filled
// once Next has returned EOF.
func (lx *Lexer) Tail() []token.Trivia { return lx.tail }

// File returns the file being lexed.
func (lx *Lexer) File() *source.File { return lx.file }

// Failed reports whether a lexical error has been emitted.
func (lx *Lexer) Failed() bool { return lx.failed }

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF или ошибки всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.failed {
		return lx.eof()
	}

	if bad, ok := lx.collectLeadingTrivia(); !ok {
		return lx.fail(bad)
	}

	// Leading из hold к EOF не приклеиваем, он доступен через Tail
	if lx.cursor.EOF() {
		lx.tail = append(lx.tail, lx.hold...)
		lx.hold = nil
		return lx.eof()
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		// Unicode идентификатор, чужой символ или битый UTF-8
		tok = lx.scanNonASCII()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	if tok.Kind == token.Invalid {
		return lx.fail(tok)
	}
	if tok.Span.Len() > lx.opts.tokenLimit() {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		tok.Kind = token.Invalid
		lx.failed = true
		lx.cursor.Off = lx.cursor.limit()
		return tok
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// fail stops the lexer after the diagnostic for bad has been reported.
func (lx *Lexer) fail(bad token.Token) token.Token {
	lx.failed = true
	lx.hold = nil
	lx.cursor.Off = lx.cursor.limit()
	return bad
}

func (lx *Lexer) eof() token.Token {
	return token.Token{Kind: token.EOF, Span: lx.file.EOFSpan()}
}

// invalid builds the Invalid token for the bytes in sp.
func (lx *Lexer) invalid(sp source.Span) token.Token {
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
