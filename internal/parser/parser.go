package parser

import (
	"context"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

type Options struct {
	// Reporter получает единственную синтаксическую ошибку. Обычно это тот же
	// reporter, что у лексера, чтобы лексическая и синтаксическая ошибки
	// оказались в одном Bag.
	Reporter diag.Reporter
}

// Result is exactly one of: a valid File, or Failed with the diagnostic in Bag.
type Result struct {
	File     ast.FileID
	Bag      *diag.Bag
	Consumed int // сколько токенов съел парсер
}

// Failed reports whether parsing stopped at an error.
func (r Result) Failed() bool { return !r.File.IsValid() }

// Parser - состояние парсера на один файл
type Parser struct {
	ts       *lexer.Stream
	arenas   *ast.Builder
	fs       *source.FileSet
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	depth    int         // текущая вложенность скобок и блоков
	failed   bool
}

// ParseFile parses one whole program from ts. Parsing halts at the first
// error; on failure Result.File is ast.NoFileID and no partial tree is
// reachable from the result. The returned error is non-nil only when ctx
// is cancelled; ctx is checked between top-level statements.
func ParseFile(
	ctx context.Context,
	fs *source.FileSet,
	ts *lexer.Stream,
	arenas *ast.Builder,
	opts Options,
) (Result, error) {
	file := ts.Lexer().File()
	p := Parser{
		ts:       ts,
		arenas:   arenas,
		fs:       fs,
		file:     file,
		opts:     opts,
		lastSpan: file.Span().Head(),
	}

	res := Result{Bag: bagOf(opts.Reporter)}
	stmts, err := p.parseProgram(ctx)
	res.Consumed = ts.Consumed()
	if err != nil {
		return res, err
	}
	if p.failed || ts.Lexer().Failed() {
		return res, nil
	}
	res.File = arenas.NewFile(file.Span(), stmts)
	return res, nil
}

func bagOf(r diag.Reporter) *diag.Bag {
	switch br := r.(type) {
	case diag.BagReporter:
		return br.Bag
	case *diag.BagReporter:
		return br.Bag
	}
	return nil
}

// parseProgram - program = { stmt } EOF
func (p *Parser) parseProgram(ctx context.Context) ([]ast.StmtID, error) {
	var stmts []ast.StmtID
	for !p.at(token.EOF) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, ok := p.parseStmt()
		if !ok {
			return nil, nil
		}
		stmts = append(stmts, id)
	}
	return stmts, nil
}
