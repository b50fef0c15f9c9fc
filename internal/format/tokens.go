package format

import (
	"lwfront/internal/ast"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// Tokens regenerates the token sequence the tree was parsed from, in source
// order and without EOF. Identifier and literal tokens carry their original
// span and text; punctuation and keywords carry a zero span, since the tree
// keeps only their kind.
func Tokens(b *ast.Builder, fid ast.FileID) []token.Token {
	file := b.Files.Get(fid)
	if file == nil {
		return nil
	}
	e := emitter{b: b}
	for _, id := range file.Stmts {
		e.stmt(id)
	}
	return e.out
}

type emitter struct {
	b   *ast.Builder
	out []token.Token
}

func (e *emitter) fixed(k token.Kind) {
	e.out = append(e.out, token.Token{Kind: k, Text: k.Spelling()})
}

func (e *emitter) leaf(k token.Kind, sp source.Span, text string) {
	e.out = append(e.out, token.Token{Kind: k, Span: sp, Text: text})
}

var assignTokens = [...]token.Kind{
	ast.AssignPlain: token.Assign,
	ast.AssignAdd:   token.PlusAssign,
	ast.AssignSub:   token.MinusAssign,
	ast.AssignMul:   token.StarAssign,
	ast.AssignDiv:   token.SlashAssign,
	ast.AssignMod:   token.PercentAssign,
}

var binaryTokens = [...]token.Kind{
	ast.ExprBinaryAdd:        token.Plus,
	ast.ExprBinarySub:        token.Minus,
	ast.ExprBinaryMul:        token.Star,
	ast.ExprBinaryDiv:        token.Slash,
	ast.ExprBinaryMod:        token.Percent,
	ast.ExprBinaryLogicalAnd: token.AndAnd,
	ast.ExprBinaryLogicalOr:  token.OrOr,
	ast.ExprBinaryEq:         token.EqEq,
	ast.ExprBinaryNotEq:      token.BangEq,
	ast.ExprBinaryLess:       token.Lt,
	ast.ExprBinaryLessEq:     token.LtEq,
	ast.ExprBinaryGreater:    token.Gt,
	ast.ExprBinaryGreaterEq:  token.GtEq,
}

var unaryTokens = [...]token.Kind{
	ast.ExprUnaryPlus:  token.Plus,
	ast.ExprUnaryMinus: token.Minus,
	ast.ExprUnaryNot:   token.Bang,
}

var literalTokens = [...]token.Kind{
	ast.ExprLitInt:    token.IntLit,
	ast.ExprLitFloat:  token.FloatLit,
	ast.ExprLitString: token.StringLit,
	ast.ExprLitTrue:   token.KwTrue,
	ast.ExprLitFalse:  token.KwFalse,
	ast.ExprLitNil:    token.KwNil,
}

func (e *emitter) stmt(id ast.StmtID) {
	st := e.b.Stmts.Get(id)
	if st == nil {
		return
	}
	switch st.Kind {
	case ast.StmtBlock:
		e.block(id)
	case ast.StmtLet:
		d := e.b.Stmts.Let(id)
		e.fixed(token.KwLet)
		e.leaf(token.Ident, d.NameSpan, e.b.Name(d.Name))
		e.fixed(token.Assign)
		e.expr(d.Value)
	case ast.StmtAssign:
		d := e.b.Stmts.Assign(id)
		e.expr(d.Target)
		k := assignTokens[d.Op]
		e.leaf(k, d.OpSpan, k.Spelling())
		e.expr(d.Value)
	case ast.StmtIf:
		d := e.b.Stmts.If(id)
		e.fixed(token.KwIf)
		e.expr(d.Cond)
		e.block(d.Then)
		if d.Else.IsValid() {
			e.fixed(token.KwElse)
			e.stmt(d.Else)
		}
	case ast.StmtWhile:
		d := e.b.Stmts.While(id)
		e.fixed(token.KwWhile)
		e.expr(d.Cond)
		e.block(d.Body)
	case ast.StmtReturn:
		e.fixed(token.KwReturn)
		if d := e.b.Stmts.Return(id); d.Value.IsValid() {
			e.expr(d.Value)
		}
	case ast.StmtFn:
		d := e.b.Stmts.Fn(id)
		e.fixed(token.KwFn)
		e.leaf(token.Ident, d.NameSpan, e.b.Name(d.Name))
		e.fixed(token.LParen)
		for i, p := range d.Params {
			if i > 0 {
				e.fixed(token.Comma)
			}
			e.leaf(token.Ident, p.Span, e.b.Name(p.Name))
		}
		if d.Trailing {
			e.fixed(token.Comma)
		}
		e.fixed(token.RParen)
		e.block(d.Body)
	case ast.StmtExpr:
		e.expr(e.b.Stmts.Expr(id).Expr)
	}
	if st.Semi {
		e.fixed(token.Semicolon)
	}
}

func (e *emitter) block(id ast.StmtID) {
	d := e.b.Stmts.Block(id)
	if d == nil {
		return
	}
	e.fixed(token.LBrace)
	for _, s := range d.Stmts {
		e.stmt(s)
	}
	e.fixed(token.RBrace)
}

func (e *emitter) expr(id ast.ExprID) {
	ex := e.b.Exprs.Get(id)
	if ex == nil {
		return
	}
	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := e.b.Exprs.Ident(id)
		e.leaf(token.Ident, ex.Span, e.b.Name(d.Name))
	case ast.ExprLit:
		d, _ := e.b.Exprs.Literal(id)
		e.leaf(literalTokens[d.Kind], ex.Span, e.b.Name(d.Value))
	case ast.ExprBinary:
		d, _ := e.b.Exprs.Binary(id)
		e.expr(d.Left)
		e.fixed(binaryTokens[d.Op])
		e.expr(d.Right)
	case ast.ExprUnary:
		d, _ := e.b.Exprs.Unary(id)
		e.fixed(unaryTokens[d.Op])
		e.expr(d.Operand)
	case ast.ExprGroup:
		d, _ := e.b.Exprs.Group(id)
		e.fixed(token.LParen)
		e.expr(d.Inner)
		e.fixed(token.RParen)
	case ast.ExprCall:
		d, _ := e.b.Exprs.Call(id)
		e.expr(d.Target)
		e.fixed(token.LParen)
		e.list(d.Args, d.Trailing)
		e.fixed(token.RParen)
	case ast.ExprIndex:
		d, _ := e.b.Exprs.Index(id)
		e.expr(d.Target)
		e.fixed(token.LBracket)
		e.expr(d.Index)
		e.fixed(token.RBracket)
	case ast.ExprMember:
		d, _ := e.b.Exprs.Member(id)
		e.expr(d.Target)
		e.fixed(token.Dot)
		e.leaf(token.Ident, d.FieldSpan, e.b.Name(d.Field))
	case ast.ExprList:
		d, _ := e.b.Exprs.List(id)
		e.fixed(token.LBracket)
		e.list(d.Elems, d.Trailing)
		e.fixed(token.RBracket)
	}
}

func (e *emitter) list(elems []ast.ExprID, trailing bool) {
	for i, el := range elems {
		if i > 0 {
			e.fixed(token.Comma)
		}
		e.expr(el)
	}
	if trailing {
		e.fixed(token.Comma)
	}
}
