package ast

import (
	"testing"

	"lwfront/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena returned a value")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("Allocate = %d, Get = %v", id, a.Get(id))
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	sp := source.Span{Start: 0, End: 1}
	x := b.Exprs.NewIdent(sp, b.StringsInterner.Intern("x"))
	one := b.Exprs.NewLiteral(sp, ExprLitInt, b.StringsInterner.InternRaw("1"))

	if _, ok := b.Exprs.Literal(x); ok {
		t.Error("ident resolved as literal")
	}
	if lit, ok := b.Exprs.Literal(one); !ok || lit.Kind != ExprLitInt || b.Name(lit.Value) != "1" {
		t.Errorf("Literal() = %+v, %v", lit, ok)
	}
	assign := b.Stmts.NewAssign(source.Span{Start: 0, End: 5}, AssignPlain, sp, x, one)
	if b.Stmts.Let(assign) != nil {
		t.Error("assign resolved as let")
	}
	if a := b.Stmts.Assign(assign); a == nil || a.Target != x || a.Value != one {
		t.Errorf("Assign() = %+v", a)
	}
	if b.Stmts.Assign(NoStmtID) != nil {
		t.Error("NoStmtID resolved")
	}
}

func TestInspectVisitsInSourceOrder(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	in := b.StringsInterner
	span := func(s, e uint32) source.Span { return source.Span{Start: s, End: e} }

	// f(a, b + c)
	f := b.Exprs.NewIdent(span(0, 1), in.Intern("f"))
	a := b.Exprs.NewIdent(span(2, 3), in.Intern("a"))
	bb := b.Exprs.NewIdent(span(5, 6), in.Intern("b"))
	c := b.Exprs.NewIdent(span(9, 10), in.Intern("c"))
	sum := b.Exprs.NewBinary(span(5, 10), ExprBinaryAdd, bb, c)
	call := b.Exprs.NewCall(span(0, 11), f, []ExprID{a, sum}, false)
	stmt := b.Stmts.NewExpr(span(0, 11), call)
	file := b.NewFile(span(0, 11), []StmtID{stmt})

	var names []string
	var kinds []string
	b.Inspect(NodeRef{File: file}, func(n NodeRef) bool {
		switch {
		case n.IsStmt():
			kinds = append(kinds, b.Stmts.Get(n.Stmt).Kind.String())
		case n.IsExpr():
			kinds = append(kinds, b.Exprs.Get(n.Expr).Kind.String())
			if id, ok := b.Exprs.Ident(n.Expr); ok {
				names = append(names, b.Name(id.Name))
			}
		}
		return true
	})
	if got := joinStrings(names); got != "f a b c" {
		t.Errorf("leaf order = %q", got)
	}
	if got := joinStrings(kinds); got != "ExprStmt Call Ident Ident Binary Ident Ident" {
		t.Errorf("kinds = %q", got)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	x := b.Exprs.NewIdent(source.Span{}, b.StringsInterner.Intern("x"))
	g := b.Exprs.NewGroup(source.Span{}, x)
	visited := 0
	b.Inspect(NodeRef{Expr: g}, func(NodeRef) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("visited %d nodes", visited)
	}
}

func TestHintsForSize(t *testing.T) {
	if h := HintsForSize(0); h != (Hints{}) {
		t.Errorf("HintsForSize(0) = %+v", h)
	}
	if h := HintsForSize(160); h.Stmts != 11 || h.Exprs != 41 {
		t.Errorf("HintsForSize(160) = %+v", h)
	}
}

func joinStrings(xs []string) string {
	out := ""
	for i, s := range xs {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
