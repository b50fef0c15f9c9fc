package parser

import (
	"fmt"

	"lwfront/internal/diag"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

const (
	wantExpression = "expression"
	wantStatement  = "statement"
)

// MaxNestingDepth bounds how deep groups, lists, calls, index expressions
// and blocks may nest. Deeper input is rejected with one diagnostic instead
// of growing the goroutine stack without limit.
const MaxNestingDepth = 10000

// стартеры statement в порядке грамматики
var stmtStarters = []string{
	token.KwLet.Describe(),
	token.KwFn.Describe(),
	token.KwIf.Describe(),
	token.KwWhile.Describe(),
	token.KwReturn.Describe(),
	token.LBrace.Describe(),
	wantExpression,
}

// закрывающие разделители, для которых при EOF предлагаем вставку
var closers = map[string]string{
	token.RParen.Describe():   ")",
	token.RBracket.Describe(): "]",
	token.RBrace.Describe():   "}",
}

func (p *Parser) peek() token.Token {
	return p.ts.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.ts.Peek().Kind == k
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.ts.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect - ожидаем конкретный токен; иначе ошибка с этим единственным ожиданием.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.unexpected(k.Describe())
	return token.Token{}, false
}

// unexpected reports the current token against the expected alternatives and
// stops the parse. An Invalid token was already reported by the lexer, so
// nothing more is emitted for it.
func (p *Parser) unexpected(expected ...string) {
	if p.failed {
		return
	}
	p.failed = true

	tok := p.peek()
	if tok.Kind == token.Invalid {
		return
	}

	found := tok.Describe()
	want := diag.JoinAlternatives(expected)
	if tok.Kind == token.EOF {
		b := diag.ReportError(p.opts.Reporter, diag.SynUnexpectedEOF, tok.Span, "unexpected end of input, expected "+want).
			WithExpected(expected, found)
		for _, e := range expected {
			if text, ok := closers[e]; ok {
				b.WithFix("insert '"+text+"'", diag.FixEdit{Span: tok.Span, NewText: text})
			}
		}
		b.Emit()
		return
	}
	diag.ReportError(p.opts.Reporter, diag.SynUnexpectedToken, tok.Span, "expected "+want+", found "+found).
		WithExpected(expected, found).
		Emit()
}

// rejectAt reports the current token with an explanatory note.
func (p *Parser) rejectAt(expected []string, note string, noteSpan source.Span) {
	if p.failed {
		return
	}
	p.failed = true
	tok := p.peek()
	diag.ReportError(p.opts.Reporter, diag.SynUnexpectedToken, tok.Span, "expected "+diag.JoinAlternatives(expected)+", found "+tok.Describe()).
		WithExpected(expected, tok.Describe()).
		WithNote(noteSpan, note).
		Emit()
}

// nest входит на уровень вложенности; на открывающей скобке сверх лимита
// останавливает разбор. Парный вызов - unnest.
func (p *Parser) nest() bool {
	if p.depth < MaxNestingDepth {
		p.depth++
		return true
	}
	if p.failed {
		return false
	}
	p.failed = true
	tok := p.peek()
	diag.ReportError(p.opts.Reporter, diag.SynNestingTooDeep, tok.Span,
		fmt.Sprintf("nesting is deeper than %d levels", MaxNestingDepth)).
		Emit()
	return false
}

func (p *Parser) unnest() { p.depth-- }

// parseName - ожидает Ident и интернирует его.
func (p *Parser) parseName() (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident)
	if !ok {
		return source.NoStringID, source.Span{}, false
	}
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}
