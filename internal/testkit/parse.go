package testkit

import (
	"context"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/parser"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// Parsed bundles everything one test parse produces.
type Parsed struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Result  parser.Result
	Bag     *diag.Bag
	// Tokens - все токены входа без EOF, полученные отдельным проходом лексера
	Tokens []token.Token
}

// Parse lexes and parses src as a virtual file named name.
func Parse(name string, src []byte) Parsed {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(name, src))

	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.HintsForSize(len(src)), nil)
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	res, _ := parser.ParseFile(context.Background(), fs, lexer.NewStream(lx), builder, parser.Options{Reporter: reporter})

	out := Parsed{FileSet: fs, File: sf, Builder: builder, Result: res, Bag: bag}
	relex := lexer.NewStream(lexer.New(sf, lexer.Options{Reporter: diag.NopReporter{}}))
	for _, tok := range relex.Drain() {
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
		out.Tokens = append(out.Tokens, tok)
	}
	return out
}
