package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// parseExpr - точка входа для выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr - precedence climbing; правый операнд берётся с prec+1,
// поэтому все операторы левоассоциативны.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		opKind := p.peek().Kind
		prec := getBinaryOperatorPrec(opKind)
		if prec < minPrec {
			break
		}
		op, _ := tokenKindToBinaryOp(opKind)
		p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.ExprSpan(left).Cover(p.arenas.ExprSpan(right))
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

// parseUnaryExpr: собираем префиксы циклом, применяем справа налево.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefix struct {
		op   ast.ExprUnaryOp
		span source.Span
	}
	var prefixes []prefix
	for {
		op, ok := unaryOps[p.peek().Kind]
		if !ok {
			break
		}
		tok := p.advance()
		prefixes = append(prefixes, prefix{op: op, span: tok.Span})
	}

	operand, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		pr := prefixes[i]
		span := pr.span.Cover(p.arenas.ExprSpan(operand))
		operand = p.arenas.Exprs.NewUnary(span, pr.op, operand)
	}
	return operand, true
}

// parsePostfixExpr: primary { call | index | member }
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.peek().Kind {
		case token.LParen:
			expr, ok = p.parseCallExpr(expr)
		case token.LBracket:
			expr, ok = p.parseIndexExpr(expr)
		case token.Dot:
			expr, ok = p.parseMemberExpr(expr)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	if !p.nest() {
		return ast.NoExprID, false
	}
	defer p.unnest()
	p.advance() // '('
	args, trailing, closeSpan, ok := p.parseExprList(token.RParen)
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.ExprSpan(target).Cover(closeSpan)
	return p.arenas.Exprs.NewCall(span, target, args, trailing), true
}

func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	if !p.nest() {
		return ast.NoExprID, false
	}
	defer p.unnest()
	p.advance() // '['
	index, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RBracket)
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.ExprSpan(target).Cover(closeTok.Span)
	return p.arenas.Exprs.NewIndex(span, target, index), true
}

func (p *Parser) parseMemberExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '.'
	field, fieldSpan, ok := p.parseName()
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.ExprSpan(target).Cover(fieldSpan)
	return p.arenas.Exprs.NewMember(span, target, field, fieldSpan), true
}

// parseExprList разбирает элементы до closer включительно; открывающая скобка уже съедена.
// Допускается завершающая запятая.
func (p *Parser) parseExprList(closer token.Kind) (elems []ast.ExprID, trailing bool, closeSpan source.Span, ok bool) {
	for !p.at(closer) {
		if !canStartExpr(p.peek().Kind) {
			p.unexpected(wantExpression, closer.Describe())
			return nil, false, source.Span{}, false
		}
		elem, ok := p.parseExpr()
		if !ok {
			return nil, false, source.Span{}, false
		}
		elems = append(elems, elem)
		trailing = false

		if p.at(closer) {
			break
		}
		if !p.at(token.Comma) {
			p.unexpected(token.Comma.Describe(), closer.Describe())
			return nil, false, source.Span{}, false
		}
		p.advance()
		trailing = true
	}
	closeTok := p.advance()
	return elems, trailing, closeTok.Span, true
}
