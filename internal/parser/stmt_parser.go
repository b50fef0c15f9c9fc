package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// parseStmt выбирает правило по первому токену; затем съедает необязательный ';'.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	var (
		id ast.StmtID
		ok bool
	)
	switch k := p.peek().Kind; {
	case k == token.KwLet:
		id, ok = p.parseLetStmt()
	case k == token.KwFn:
		id, ok = p.parseFnStmt()
	case k == token.KwIf:
		id, ok = p.parseIfStmt()
	case k == token.KwWhile:
		id, ok = p.parseWhileStmt()
	case k == token.KwReturn:
		id, ok = p.parseReturnStmt()
	case k == token.LBrace:
		id, ok = p.parseBlock()
	case canStartExpr(k):
		id, ok = p.parseSimpleStmt()
	default:
		p.unexpected(stmtStarters...)
		return ast.NoStmtID, false
	}
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.Semicolon) {
		p.advance()
		p.arenas.Stmts.Get(id).Semi = true
	}
	return id, true
}

// let IDENT = expr
func (p *Parser) parseLetStmt() (ast.StmtID, bool) {
	letTok := p.advance()
	name, nameSpan, ok := p.parseName()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Assign); !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := letTok.Span.Cover(p.arenas.ExprSpan(value))
	return p.arenas.Stmts.NewLet(span, name, nameSpan, value), true
}

// return [expr]; выражение есть, только если следующий токен может его начать
func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()
	if !canStartExpr(p.peek().Kind) {
		return p.arenas.Stmts.NewReturn(retTok.Span, ast.NoExprID), true
	}
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := retTok.Span.Cover(p.arenas.ExprSpan(value))
	return p.arenas.Stmts.NewReturn(span, value), true
}

// block = "{" { stmt } "}"
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.unexpected(token.LBrace.Describe())
		return ast.NoStmtID, false
	}
	if !p.nest() {
		return ast.NoStmtID, false
	}
	defer p.unnest()
	open := p.advance()
	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.unexpected(token.RBrace.Describe(), wantStatement)
			return ast.NoStmtID, false
		}
		id, ok := p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		stmts = append(stmts, id)
	}
	closeTok := p.advance()
	return p.arenas.Stmts.NewBlock(open.Span.Cover(closeTok.Span), stmts), true
}

// simpleStmt = expr [ assignOp expr ]
func (p *Parser) parseSimpleStmt() (ast.StmtID, bool) {
	target, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	targetSpan := p.arenas.ExprSpan(target)

	op, isAssign := assignOps[p.peek().Kind]
	if !isAssign {
		return p.arenas.Stmts.NewExpr(targetSpan, target), true
	}
	if !p.isAssignable(target) {
		p.rejectAt([]string{token.Semicolon.Describe(), wantStatement},
			"only identifiers, index and member expressions can be assigned to", targetSpan)
		return ast.NoStmtID, false
	}
	opTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	span := targetSpan.Cover(p.arenas.ExprSpan(value))
	return p.arenas.Stmts.NewAssign(span, op, opTok.Span, target, value), true
}

func (p *Parser) isAssignable(id ast.ExprID) bool {
	switch p.arenas.Exprs.Get(id).Kind {
	case ast.ExprIdent, ast.ExprIndex, ast.ExprMember:
		return true
	default:
		return false
	}
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:        ast.AssignPlain,
	token.PlusAssign:    ast.AssignAdd,
	token.MinusAssign:   ast.AssignSub,
	token.StarAssign:    ast.AssignMul,
	token.SlashAssign:   ast.AssignDiv,
	token.PercentAssign: ast.AssignMod,
}

func (p *Parser) stmtEnd(id ast.StmtID, start source.Span) source.Span {
	return start.Cover(p.arenas.StmtSpan(id))
}
