package driver

import (
	"context"
	"fmt"
	"strconv"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/observ"
	"lwfront/internal/parser"
	"lwfront/internal/source"
	"lwfront/internal/trace"
)

// ParseResult is the outcome of one parse: either FileID is valid, or Bag
// holds exactly one error diagnostic.
type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Builder  *ast.Builder
	FileID   ast.FileID
	Bag      *diag.Bag
	Consumed int // tokens taken by the parser
	// Timings is nil unless Options.Timings; it never holds parse errors.
	Timings *diag.Bag
	Timing  *observ.Report
}

// OK reports whether a tree was produced.
func (r *ParseResult) OK() bool {
	return r != nil && r.FileID.IsValid()
}

// Diagnostic returns the single error of a failed parse.
func (r *ParseResult) Diagnostic() (diag.Diagnostic, bool) {
	if r == nil || r.OK() {
		return diag.Diagnostic{}, false
	}
	return r.Bag.First()
}

// ParseSource parses in-memory bytes under label. The bytes are used as is.
func ParseSource(ctx context.Context, label string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, fs.Get(fs.AddVirtual(label, src)), opts, nil)
}

// Parse loads path (BOM stripped, CRLF normalised) and parses it. A load
// failure is returned as error, not as a diagnostic.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := newTimer(opts)
	fs := source.NewFileSet()

	idx := timer.Begin("load")
	fileID, err := fs.Load(path)
	timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts, timer)
}

// parseFile runs lexer and parser over an already registered file. Only
// the file's own stream and builder are written, so calls for different
// files of one FileSet may run concurrently.
func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, timer *observ.Timer) (*ParseResult, error) {
	if timer == nil {
		timer = newTimer(opts)
	}
	ctx, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+file.Path)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	lexOpts := opts.lexerOptions()
	lexOpts.Reporter = reporter
	stream := lexer.NewStream(lexer.New(file, lexOpts))
	builder := ast.NewBuilder(ast.HintsForSize(len(file.Content)), nil)

	idx := timer.Begin("parse")
	_, passSpan := trace.BeginCtx(ctx, trace.ScopePass, "parse")
	res, err := parser.ParseFile(ctx, fs, stream, builder, parser.Options{Reporter: reporter})
	passSpan.End("")
	timer.End(idx, fmt.Sprintf("%d tokens", stream.Consumed()))
	if err != nil {
		span.End("cancelled")
		return nil, err
	}

	out := &ParseResult{
		FileSet:  fs,
		File:     file,
		Builder:  builder,
		FileID:   res.File,
		Bag:      bag,
		Consumed: res.Consumed,
	}
	if opts.Timings {
		report := timer.Report()
		out.Timing = &report
		out.Timings = diag.NewBag(0)
		appendTimingDiagnostic(out.Timings, timingPayload{Kind: "parse", Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}

	status := "ok"
	if !out.OK() {
		status = "error"
	}
	span.WithExtra("tokens", strconv.Itoa(res.Consumed)).End(status)
	return out, nil
}

func newTimer(opts Options) *observ.Timer {
	if !opts.Timings {
		return observ.Disabled()
	}
	return observ.NewTimer()
}
