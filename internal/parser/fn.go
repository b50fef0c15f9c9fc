package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/token"
)

// fn IDENT ( [ IDENT { , IDENT } [ , ] ] ) block
func (p *Parser) parseFnStmt() (ast.StmtID, bool) {
	fnTok := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.LParen); !ok {
		return ast.NoStmtID, false
	}

	var params []ast.FnParam
	trailing := false
	for !p.at(token.RParen) {
		if !p.at(token.Ident) {
			p.unexpected(token.Ident.Describe(), token.RParen.Describe())
			return ast.NoStmtID, false
		}
		tok := p.advance()
		params = append(params, ast.FnParam{Name: p.arenas.StringsInterner.Intern(tok.Text), Span: tok.Span})
		trailing = false

		if p.at(token.RParen) {
			break
		}
		if !p.at(token.Comma) {
			p.unexpected(token.Comma.Describe(), token.RParen.Describe())
			return ast.NoStmtID, false
		}
		p.advance()
		trailing = true
	}
	p.advance() // ')'

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewFn(p.stmtEnd(body, fnTok.Span), name, nameSpan, params, trailing, body), true
}
