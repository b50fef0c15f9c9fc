package ast

import (
	"lwfront/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtAssign
	StmtIf
	StmtWhile
	StmtReturn
	StmtFn
	StmtExpr
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtLet:
		return "Let"
	case StmtAssign:
		return "Assign"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtReturn:
		return "Return"
	case StmtFn:
		return "Fn"
	case StmtExpr:
		return "ExprStmt"
	default:
		return "Stmt(?)"
	}
}

// Stmt is the tagged header; Payload indexes the per-kind arena.
// Semi records an optional terminating ';' (not part of Span).
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	Semi    bool
}

// AssignOp is the operator of an assignment statement.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd                   // +=
	AssignSub                   // -=
	AssignMul                   // *=
	AssignDiv                   // /=
	AssignMod                   // %=
)

func (op AssignOp) String() string {
	switch op {
	case AssignPlain:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	default:
		return "?="
	}
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtLetData struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type StmtAssignData struct {
	Op     AssignOp
	OpSpan source.Span
	Target ExprID
	Value  ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // всегда StmtBlock
	Else StmtID // StmtBlock, StmtIf или NoStmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

type StmtReturnData struct {
	Value ExprID // NoExprID для голого return
}

type FnParam struct {
	Name source.StringID
	Span source.Span
}

type StmtFnData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []FnParam
	Trailing bool // запятая после последнего параметра
	Body     StmtID
}

type StmtExprData struct {
	Expr ExprID
}
