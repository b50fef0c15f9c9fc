package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/token"
)

// Строка: "..." с escape через '\'. Перевод строки или EOF до закрывающей
// кавычки → LexUnterminatedString. Escape-последовательности не
// интерпретируются: Text хранит исходный срез с кавычками.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.invalid(sp)
		case b == '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
				continue
			}
			if lx.badUTF8() {
				return lx.invalidUTF8Here()
			}
			lx.bumpRune()
		case b >= utf8RuneSelf:
			if lx.badUTF8() {
				return lx.invalidUTF8Here()
			}
			lx.bumpRune()
		default:
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.invalid(sp)
}

// invalidUTF8Here reports the undecodable byte under the cursor.
func (lx *Lexer) invalidUTF8Here() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexInvalidUTF8, sp, "invalid UTF-8 encoding")
	return lx.invalid(sp)
}
