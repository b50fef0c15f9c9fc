package ast

import (
	"lwfront/internal/source"
)

// File is the root of one parsed input: the program's top-level statements.
type File struct {
	Span  source.Span
	Stmts []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span, stmts []StmtID) FileID {
	return FileID(f.Arena.Allocate(File{Span: sp, Stmts: stmts}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
