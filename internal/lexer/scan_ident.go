package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор и проверяет через LookupKeyword.
// Token.Text - ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if lx.badUTF8() || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanNonASCII handles a leading byte >= 0x80: a Unicode identifier,
// a character outside the language, or a decoding failure.
func (lx *Lexer) scanNonASCII() token.Token {
	start := lx.cursor.Mark()
	if lx.badUTF8() {
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexInvalidUTF8, sp, "invalid UTF-8 encoding")
		return lx.invalid(sp)
	}
	r, _ := lx.peekRune()
	if isIdentStartRune(r) {
		return lx.scanIdentOrKeyword()
	}
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
	return lx.invalid(sp)
}
