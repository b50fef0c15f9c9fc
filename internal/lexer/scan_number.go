package lexer

import (
	"lwfront/internal/diag"
	"lwfront/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.5, .5, 1e-3, 1.0e+10.
// Число не может сразу продолжаться буквой или цифрой: "12ab", "0b12" → LexBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	switch {
	case lx.cursor.Peek() == '.':
		// ".digits", вызвано после isNumberAfterDot
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		if !lx.scanExponent() {
			return lx.badNumber(start, "expected digit after exponent")
		}

	case lx.cursor.Peek() == '0' && lx.basePrefix() != nil:
		digit := lx.basePrefix()
		lx.cursor.Bump()
		lx.cursor.Bump()
		if lx.eatDigits(digit) == 0 {
			return lx.badNumber(start, "expected digits after base prefix")
		}

	default:
		lx.eatDigits(isDec)
		if lx.isNumberAfterDot() {
			lx.cursor.Bump() // '.'
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
		if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
			kind = token.FloatLit
			if !lx.scanExponent() {
				return lx.badNumber(start, "expected digit after exponent")
			}
		}
	}

	if b := lx.cursor.Peek(); isIdentContinueByte(b) || b >= utf8RuneSelf && !lx.badUTF8() && lx.identRuneAhead() {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid character in number literal")
	}
	return lx.emit(kind, start)
}

// basePrefix returns the digit class for 0b/0o/0x at the cursor.
func (lx *Lexer) basePrefix() func(byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '0' {
		return nil
	}
	switch b1 {
	case 'b', 'B':
		return func(b byte) bool { return b == '0' || b == '1' }
	case 'o', 'O':
		return func(b byte) bool { return b >= '0' && b <= '7' }
	case 'x', 'X':
		return isHex
	}
	return nil
}

// eatDigits consumes digits and '_' separators, returning the digit count.
func (lx *Lexer) eatDigits(digit func(byte) bool) int {
	n := 0
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			n++
		case b == '_' && n > 0:
		default:
			return n
		}
		lx.cursor.Bump()
	}
}

// scanExponent consumes [eE][+-]?digits if present. It reports false when the
// exponent marker is not followed by a digit.
func (lx *Lexer) scanExponent() bool {
	if b := lx.cursor.Peek(); b != 'e' && b != 'E' {
		return true
	}
	lx.cursor.Bump()
	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}
	return lx.eatDigits(isDec) > 0
}

func (lx *Lexer) identRuneAhead() bool {
	r, _ := lx.peekRune()
	return isIdentContinueRune(r)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return lx.invalid(sp)
}
