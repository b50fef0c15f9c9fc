package format

import (
	"bytes"
	"context"
	"slices"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/parser"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// CheckRoundTrip formats the file, re-parses the output and verifies that
// the token kinds are unchanged and that formatting the output again is a
// no-op.
func CheckRoundTrip(sf *source.File, opt Options) (ok bool, msg string) {
	origBuilder, origFileID := parseOnce(sf)
	if !origFileID.IsValid() {
		return false, "fmt-check: initial parse failed"
	}

	formatted, err := FormatFile(sf, origBuilder, origFileID, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSetWithBase("")
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, formatted))
	newBuilder, newFileID := parseOnce(rebuilt)
	if !newFileID.IsValid() {
		return false, "fmt-check: reparse failed"
	}

	if !slices.Equal(kinds(Tokens(origBuilder, origFileID)), kinds(Tokens(newBuilder, newFileID))) {
		return false, "fmt-check: token sequence differs after round-trip"
	}

	again, err := FormatFile(rebuilt, newBuilder, newFileID, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}
	if !bytes.Equal(formatted, again) {
		return false, "fmt-check: formatting is not idempotent"
	}
	return true, "fmt-check: OK"
}

func parseOnce(sf *source.File) (*ast.Builder, ast.FileID) {
	reporter := diag.BagReporter{Bag: diag.NewBag(1)}
	lx := lexer.New(sf, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsForSize(len(sf.Content)), nil)
	res, err := parser.ParseFile(context.Background(), nil, lexer.NewStream(lx), builder, parser.Options{Reporter: reporter})
	if err != nil {
		return builder, ast.NoFileID
	}
	return builder, res.File
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
