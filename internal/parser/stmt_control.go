package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/token"
)

// if expr block [ else ( if | block ) ]
// Цепочка else-if разбирается циклом, а не рекурсией.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	type pending struct {
		start uint32
		cond  ast.ExprID
		then  ast.StmtID
	}
	var chain []pending
	var tail ast.StmtID

	for {
		ifTok := p.advance() // 'if'
		cond, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		then, ok := p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		chain = append(chain, pending{start: ifTok.Span.Start, cond: cond, then: then})

		if !p.at(token.KwElse) {
			break
		}
		p.advance()
		if p.at(token.KwIf) {
			continue
		}
		if !p.at(token.LBrace) {
			p.unexpected(token.KwIf.Describe(), token.LBrace.Describe())
			return ast.NoStmtID, false
		}
		if tail, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
		break
	}

	// собираем изнутри наружу: последний if владеет хвостовым else
	for i := len(chain) - 1; i >= 0; i-- {
		c := chain[i]
		span := p.arenas.StmtSpan(c.then)
		span.Start = c.start
		if tail.IsValid() {
			span = span.Cover(p.arenas.StmtSpan(tail))
		}
		tail = p.arenas.Stmts.NewIf(span, c.cond, c.then, tail)
	}
	return tail, true
}

// while expr block
func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(p.stmtEnd(body, whileTok.Span), cond, body), true
}
