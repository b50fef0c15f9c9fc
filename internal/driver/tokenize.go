package driver

import (
	"context"
	"fmt"

	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/source"
	"lwfront/internal/token"
	"lwfront/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens ends with the terminal token: EOF, or Invalid after a lex error.
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize loads path and runs the lexer to its end.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), opts), nil
}

// TokenizeSource lexes in-memory bytes under label.
func TokenizeSource(ctx context.Context, label string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, fs.Get(fs.AddVirtual(label, src)), opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	_, span := trace.BeginCtx(ctx, trace.ScopePass, "lex")
	bag := diag.NewBag(opts.MaxDiagnostics)
	lexOpts := opts.lexerOptions()
	lexOpts.Reporter = diag.BagReporter{Bag: bag}

	tokens := lexer.NewStream(lexer.New(file, lexOpts)).Drain()
	span.WithExtra("tokens", fmt.Sprint(len(tokens))).End(file.Path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}
}
