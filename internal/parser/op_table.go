package parser

import (
	"lwfront/internal/ast"
	"lwfront/internal/token"
)

// Таблица приоритетов бинарных операторов (больше - сильнее связывает).
// Все уровни левоассоциативны.
const (
	precNone = iota
	precOr
	precAnd
	precEquality
	precCompare
	precAdditive
	precMultiplicative
)

type binaryOpInfo struct {
	op   ast.ExprBinaryOp
	prec int
}

var binaryOps = map[token.Kind]binaryOpInfo{
	token.OrOr:    {ast.ExprBinaryLogicalOr, precOr},
	token.AndAnd:  {ast.ExprBinaryLogicalAnd, precAnd},
	token.EqEq:    {ast.ExprBinaryEq, precEquality},
	token.BangEq:  {ast.ExprBinaryNotEq, precEquality},
	token.Lt:      {ast.ExprBinaryLess, precCompare},
	token.LtEq:    {ast.ExprBinaryLessEq, precCompare},
	token.Gt:      {ast.ExprBinaryGreater, precCompare},
	token.GtEq:    {ast.ExprBinaryGreaterEq, precCompare},
	token.Plus:    {ast.ExprBinaryAdd, precAdditive},
	token.Minus:   {ast.ExprBinarySub, precAdditive},
	token.Star:    {ast.ExprBinaryMul, precMultiplicative},
	token.Slash:   {ast.ExprBinaryDiv, precMultiplicative},
	token.Percent: {ast.ExprBinaryMod, precMultiplicative},
}

// getBinaryOperatorPrec возвращает приоритет или -1, если токен не бинарный оператор.
func getBinaryOperatorPrec(k token.Kind) int {
	if info, ok := binaryOps[k]; ok {
		return info.prec
	}
	return -1
}

func tokenKindToBinaryOp(k token.Kind) (ast.ExprBinaryOp, bool) {
	info, ok := binaryOps[k]
	return info.op, ok
}

var unaryOps = map[token.Kind]ast.ExprUnaryOp{
	token.Plus:  ast.ExprUnaryPlus,
	token.Minus: ast.ExprUnaryMinus,
	token.Bang:  ast.ExprUnaryNot,
}

// canStartExpr - может ли токен начинать выражение
func canStartExpr(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.KwTrue, token.KwFalse, token.KwNil,
		token.LParen, token.LBracket,
		token.Plus, token.Minus, token.Bang:
		return true
	default:
		return false
	}
}
