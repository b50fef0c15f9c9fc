package ast

import (
	"lwfront/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[StmtBlockData]
	Lets    *Arena[StmtLetData]
	Assigns *Arena[StmtAssignData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Returns *Arena[StmtReturnData]
	Fns     *Arena[StmtFnData]
	Exprs   *Arena[StmtExprData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[StmtBlockData](small),
		Lets:    NewArena[StmtLetData](small),
		Assigns: NewArena[StmtAssignData](small),
		Ifs:     NewArena[StmtIfData](small),
		Whiles:  NewArena[StmtWhileData](small),
		Returns: NewArena[StmtReturnData](small),
		Fns:     NewArena[StmtFnData](small),
		Exprs:   NewArena[StmtExprData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
}

func (s *Stmts) Block(id StmtID) *StmtBlockData {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil
	}
	return s.Blocks.Get(p)
}

func (s *Stmts) NewLet(span source.Span, name source.StringID, nameSpan source.Span, value ExprID) StmtID {
	return s.new(StmtLet, span, s.Lets.Allocate(StmtLetData{Name: name, NameSpan: nameSpan, Value: value}))
}

func (s *Stmts) Let(id StmtID) *StmtLetData {
	p, ok := s.payload(id, StmtLet)
	if !ok {
		return nil
	}
	return s.Lets.Get(p)
}

func (s *Stmts) NewAssign(span source.Span, op AssignOp, opSpan source.Span, target, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(StmtAssignData{Op: op, OpSpan: opSpan, Target: target, Value: value}))
}

func (s *Stmts) Assign(id StmtID) *StmtAssignData {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil
	}
	return s.Assigns.Get(p)
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) If(id StmtID) *StmtIfData {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil
	}
	return s.Ifs.Get(p)
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body}))
}

func (s *Stmts) While(id StmtID) *StmtWhileData {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil
	}
	return s.Whiles.Get(p)
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(StmtReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) *StmtReturnData {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil
	}
	return s.Returns.Get(p)
}

func (s *Stmts) NewFn(span source.Span, name source.StringID, nameSpan source.Span, params []FnParam, trailing bool, body StmtID) StmtID {
	return s.new(StmtFn, span, s.Fns.Allocate(StmtFnData{Name: name, NameSpan: nameSpan, Params: params, Trailing: trailing, Body: body}))
}

func (s *Stmts) Fn(id StmtID) *StmtFnData {
	p, ok := s.payload(id, StmtFn)
	if !ok {
		return nil
	}
	return s.Fns.Get(p)
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(StmtExprData{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) *StmtExprData {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil
	}
	return s.Exprs.Get(p)
}
