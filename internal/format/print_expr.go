package format

import (
	"lwfront/internal/ast"
	"lwfront/internal/source"
)

// spelling - имя так, как оно написано в исходнике. В дереве имена лежат в
// NFC, и печать из интернера молча заменила бы, например, U+2126 на U+03A9.
func (p *printer) spelling(name source.StringID, sp source.Span) string {
	if !sp.Empty() && int(sp.End) <= len(p.content) {
		return string(p.content[sp.Start:sp.End])
	}
	return p.builder.Name(name)
}

func (p *printer) printExpr(id ast.ExprID) {
	ex := p.builder.Exprs.Get(id)
	if ex == nil {
		return
	}
	w := p.writer
	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := p.builder.Exprs.Ident(id)
		w.WriteString(p.spelling(d.Name, ex.Span))
	case ast.ExprLit:
		d, _ := p.builder.Exprs.Literal(id)
		w.WriteString(p.builder.Name(d.Value))
	case ast.ExprBinary:
		d, _ := p.builder.Exprs.Binary(id)
		p.printExpr(d.Left)
		w.Space()
		w.WriteString(d.Op.String())
		w.Space()
		p.printExpr(d.Right)
	case ast.ExprUnary:
		d, _ := p.builder.Exprs.Unary(id)
		w.WriteString(d.Op.String())
		p.printExpr(d.Operand)
	case ast.ExprGroup:
		d, _ := p.builder.Exprs.Group(id)
		w.WriteString("(")
		p.printExpr(d.Inner)
		w.WriteString(")")
	case ast.ExprCall:
		d, _ := p.builder.Exprs.Call(id)
		p.printExpr(d.Target)
		w.WriteString("(")
		p.printList(d.Args, d.Trailing)
		w.WriteString(")")
	case ast.ExprIndex:
		d, _ := p.builder.Exprs.Index(id)
		p.printExpr(d.Target)
		w.WriteString("[")
		p.printExpr(d.Index)
		w.WriteString("]")
	case ast.ExprMember:
		d, _ := p.builder.Exprs.Member(id)
		p.printExpr(d.Target)
		w.WriteString(".")
		w.WriteString(p.spelling(d.Field, d.FieldSpan))
	case ast.ExprList:
		d, _ := p.builder.Exprs.List(id)
		w.WriteString("[")
		p.printList(d.Elems, d.Trailing)
		w.WriteString("]")
	}
}

func (p *printer) printList(elems []ast.ExprID, trailing bool) {
	for i, e := range elems {
		if i > 0 {
			p.writer.WriteString(", ")
		}
		p.printExpr(e)
	}
	if trailing {
		p.writer.WriteString(",")
	}
}
