package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
//   - ' ', '\t', '\r' коалесцируются в один TriviaSpace
//   - последовательные '\n' коалесцируются в один TriviaNewline
//   - //... до \n -> TriviaLineComment
//   - /* ... */ -> TriviaBlockComment (с вложенностью)
//
// On a lexical error inside trivia it returns the Invalid token and false.
func (lx *Lexer) collectLeadingTrivia() (token.Token, bool) {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		switch b := lx.cursor.Peek(); {
		case b == ' ' || b == '\t' || b == '\r':
			for b2 := lx.cursor.Peek(); b2 == ' ' || b2 == '\t' || b2 == '\r'; b2 = lx.cursor.Peek() {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)

		case b == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaNewline, start)

		case b == '/':
			matched, bad, ok := lx.scanComment()
			if !ok {
				return bad, false
			}
			if !matched {
				return token.Token{}, true
			}

		default:
			return token.Token{}, true
		}
	}
	return token.Token{}, true
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// scanComment consumes "//..." or "/*...*/". matched is false when the '/'
// starts an operator instead.
func (lx *Lexer) scanComment() (matched bool, bad token.Token, ok bool) {
	start := lx.cursor.Mark()
	b0, b1, has2 := lx.cursor.Peek2()
	if !has2 || b0 != '/' || (b1 != '/' && b1 != '*') {
		return false, token.Token{}, true
	}
	lx.cursor.Bump()
	lx.cursor.Bump()

	if b1 == '/' {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			if !lx.bumpCommentByte() {
				return true, lx.invalidUTF8Here(), false
			}
		}
		lx.holdTrivia(token.TriviaLineComment, start)
		return true, token.Token{}, true
	}

	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		switch {
		case lx.try2('/', '*'):
			depth++
		case lx.try2('*', '/'):
			depth--
		default:
			if !lx.bumpCommentByte() {
				return true, lx.invalidUTF8Here(), false
			}
		}
	}
	if depth > 0 {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
		return true, lx.invalid(sp), false
	}
	lx.holdTrivia(token.TriviaBlockComment, start)
	return true, token.Token{}, true
}

// bumpCommentByte advances over one character of comment text. It stops
// (false) on bytes that are not valid UTF-8.
func (lx *Lexer) bumpCommentByte() bool {
	if lx.cursor.Peek() < utf8RuneSelf {
		lx.cursor.Bump()
		return true
	}
	if lx.badUTF8() {
		return false
	}
	lx.bumpRune()
	return true
}
