package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/token"
)

var literalKinds = map[token.Kind]ast.ExprLitKind{
	token.IntLit:    ast.ExprLitInt,
	token.FloatLit:  ast.ExprLitFloat,
	token.StringLit: ast.ExprLitString,
	token.KwTrue:    ast.ExprLitTrue,
	token.KwFalse:   ast.ExprLitFalse,
	token.KwNil:     ast.ExprLitNil,
}

// parsePrimary: ident | literal | "(" expr ")" | "[" list "]"
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true

	case token.LParen:
		return p.parseGroupExpr()

	case token.LBracket:
		if !p.nest() {
			return ast.NoExprID, false
		}
		defer p.unnest()
		p.advance()
		elems, trailing, closeSpan, ok := p.parseExprList(token.RBracket)
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewList(tok.Span.Cover(closeSpan), elems, trailing), true
	}

	if kind, ok := literalKinds[tok.Kind]; ok {
		p.advance()
		// литерал хранится как написан, без NFC
		return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.StringsInterner.InternRaw(tok.Text)), true
	}

	p.unexpected(wantExpression)
	return ast.NoExprID, false
}

func (p *Parser) parseGroupExpr() (ast.ExprID, bool) {
	if !p.nest() {
		return ast.NoExprID, false
	}
	defer p.unnest()
	open := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true
}
