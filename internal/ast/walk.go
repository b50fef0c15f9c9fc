package ast

import "lwfront/internal/source"

// NodeRef points at one node of the tree.
type NodeRef struct {
	File FileID
	Stmt StmtID
	Expr ExprID
}

func (n NodeRef) IsFile() bool { return n.File.IsValid() }
func (n NodeRef) IsStmt() bool { return n.Stmt.IsValid() }
func (n NodeRef) IsExpr() bool { return n.Expr.IsValid() }

// Span returns the source range of the node.
func (b *Builder) Span(n NodeRef) source.Span {
	switch {
	case n.IsFile():
		return b.Files.Get(n.File).Span
	case n.IsStmt():
		return b.StmtSpan(n.Stmt)
	default:
		return b.ExprSpan(n.Expr)
	}
}

// Children lists the direct children of n in source order.
func (b *Builder) Children(n NodeRef) []NodeRef {
	var out []NodeRef
	st := func(id StmtID) {
		if id.IsValid() {
			out = append(out, NodeRef{Stmt: id})
		}
	}
	ex := func(id ExprID) {
		if id.IsValid() {
			out = append(out, NodeRef{Expr: id})
		}
	}

	switch {
	case n.IsFile():
		for _, id := range b.Files.Get(n.File).Stmts {
			st(id)
		}
	case n.IsStmt():
		s := b.Stmts.Get(n.Stmt)
		if s == nil {
			return nil
		}
		switch s.Kind {
		case StmtBlock:
			for _, id := range b.Stmts.Block(n.Stmt).Stmts {
				st(id)
			}
		case StmtLet:
			ex(b.Stmts.Let(n.Stmt).Value)
		case StmtAssign:
			a := b.Stmts.Assign(n.Stmt)
			ex(a.Target)
			ex(a.Value)
		case StmtIf:
			d := b.Stmts.If(n.Stmt)
			ex(d.Cond)
			st(d.Then)
			st(d.Else)
		case StmtWhile:
			d := b.Stmts.While(n.Stmt)
			ex(d.Cond)
			st(d.Body)
		case StmtReturn:
			ex(b.Stmts.Return(n.Stmt).Value)
		case StmtFn:
			st(b.Stmts.Fn(n.Stmt).Body)
		case StmtExpr:
			ex(b.Stmts.Expr(n.Stmt).Expr)
		}
	case n.IsExpr():
		e := b.Exprs.Get(n.Expr)
		if e == nil {
			return nil
		}
		switch e.Kind {
		case ExprBinary:
			d, _ := b.Exprs.Binary(n.Expr)
			ex(d.Left)
			ex(d.Right)
		case ExprUnary:
			d, _ := b.Exprs.Unary(n.Expr)
			ex(d.Operand)
		case ExprGroup:
			d, _ := b.Exprs.Group(n.Expr)
			ex(d.Inner)
		case ExprCall:
			d, _ := b.Exprs.Call(n.Expr)
			ex(d.Target)
			for _, a := range d.Args {
				ex(a)
			}
		case ExprIndex:
			d, _ := b.Exprs.Index(n.Expr)
			ex(d.Target)
			ex(d.Index)
		case ExprMember:
			d, _ := b.Exprs.Member(n.Expr)
			ex(d.Target)
		case ExprList:
			d, _ := b.Exprs.List(n.Expr)
			for _, el := range d.Elems {
				ex(el)
			}
		}
	}
	return out
}

// Inspect walks the tree rooted at n depth-first in source order. When fn
// returns false the children of that node are skipped.
func (b *Builder) Inspect(n NodeRef, fn func(NodeRef) bool) {
	stack := []NodeRef{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		kids := b.Children(cur)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}
