package ast

import (
	"lwfront/internal/source"
)

type Hints struct{ Files, Stmts, Exprs uint }

// Builder owns every arena of one parse. It is not safe for concurrent use;
// concurrent parses each get their own Builder.
type Builder struct {
	Files           *Files
	Stmts           *Stmts
	Exprs           *Exprs
	StringsInterner *source.Interner
}

// NewBuilder allocates arenas sized by hints. A nil interner gets a fresh one.
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: interner,
	}
}

// HintsForSize estimates arena sizes from the input length.
func HintsForSize(n int) Hints {
	if n <= 0 {
		return Hints{}
	}
	// грубо: одно выражение на ~4 байта, один statement на ~16
	return Hints{Files: 1, Stmts: uint(n/16 + 1), Exprs: uint(n/4 + 1)}
}

func (b *Builder) NewFile(sp source.Span, stmts []StmtID) FileID {
	return b.Files.New(sp, stmts)
}

// Name resolves an interned identifier or literal.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}

// StmtSpan returns the span of a statement, or the zero span for NoStmtID.
func (b *Builder) StmtSpan(id StmtID) source.Span {
	if st := b.Stmts.Get(id); st != nil {
		return st.Span
	}
	return source.Span{}
}

// ExprSpan returns the span of an expression, or the zero span for NoExprID.
func (b *Builder) ExprSpan(id ExprID) source.Span {
	if ex := b.Exprs.Get(id); ex != nil {
		return ex.Span
	}
	return source.Span{}
}
