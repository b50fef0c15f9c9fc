package format

import (
	"bytes"
	"errors"

	"lwfront/internal/ast"
	"lwfront/internal/lexer"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	builder *ast.Builder
	writer  *Writer
	content []byte
	// комментарии исходника по порядку; next - первый ещё не напечатанный
	comments []token.Trivia
	next     int
	prevEnd  int  // конец последнего напечатанного фрагмента исходника
	fresh    bool // в текущем блоке ещё ничего не напечатано
}

// FormatFile prints the program in canonical layout: one statement per line,
// blocks indented, single spaces around binary and assignment operators.
// Optional ';' and trailing commas are kept. Comments of sf are kept: a
// comment before a statement stays on its own line (or inline for a block
// comment on the same line), comments after a statement on its line stay
// trailing, and comments inside a statement move to its end. Runs of blank
// lines collapse to one.
func FormatFile(sf *source.File, b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	opt = opt.withDefaults()
	pr := printer{
		builder:  b,
		writer:   NewWriter(opt),
		content:  sf.Content,
		comments: collectComments(sf),
		fresh:    true,
	}
	limit := len(sf.Content)
	for _, id := range file.Stmts {
		pr.printItem(id, limit)
		pr.writer.Newline()
	}
	pr.leading(limit)
	if !pr.writer.AtLineStart() {
		pr.writer.Newline()
	}
	return pr.writer.Bytes(), nil
}

// collectComments re-lexes sf and returns its comments in source order.
func collectComments(sf *source.File) []token.Trivia {
	var out []token.Trivia
	keep := func(trivia []token.Trivia) {
		for _, tr := range trivia {
			if tr.Kind == token.TriviaLineComment || tr.Kind == token.TriviaBlockComment {
				out = append(out, tr)
			}
		}
	}
	lx := lexer.New(sf, lexer.Options{})
	for {
		tok := lx.Next()
		keep(tok.Leading)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}
	keep(lx.Tail())
	return out
}

// printItem prints one statement of a block (or of the file) together with
// the comments around it. limit is where the enclosing block ends.
func (p *printer) printItem(id ast.StmtID, limit int) {
	st := p.builder.Stmts.Get(id)
	if st == nil {
		return
	}
	start, end := int(st.Span.Start), int(st.Span.End)
	p.leading(start)
	if !p.writer.AtLineStart() {
		p.writer.Space()
	}
	p.blankLine(start)
	p.printStmt(id)
	p.fresh = false
	p.prevEnd = max(p.prevEnd, end)
	p.trailing(end, limit)
}

// leading prints the comments that start before off.
func (p *printer) leading(off int) {
	w := p.writer
	for p.next < len(p.comments) && int(p.comments[p.next].Span.Start) < off {
		c := p.comments[p.next]
		p.next++
		p.blankLine(int(c.Span.Start))
		if !w.AtLineStart() {
			w.Space()
		}
		w.WriteString(c.Text)
		p.fresh = false
		p.prevEnd = max(p.prevEnd, int(c.Span.End))

		follow := off
		if p.next < len(p.comments) && int(p.comments[p.next].Span.Start) < off {
			follow = int(p.comments[p.next].Span.Start)
		}
		if c.Kind == token.TriviaLineComment || !p.sameLine(int(c.Span.End), follow) {
			w.Newline()
		}
	}
}

// trailing prints the comments inside the statement that ended at end and
// the ones after it on the same source line.
func (p *printer) trailing(end, limit int) {
	w := p.writer
	afterLine := false
	for p.next < len(p.comments) {
		c := p.comments[p.next]
		start := int(c.Span.Start)
		if start >= end && (start >= limit || !p.sameLine(p.prevEnd, start)) {
			return
		}
		p.next++
		if afterLine {
			w.Newline()
		} else {
			w.Space()
		}
		w.WriteString(c.Text)
		afterLine = c.Kind == token.TriviaLineComment
		p.prevEnd = max(p.prevEnd, int(c.Span.End))
	}
}

// blankLine keeps one empty line where the source had at least one.
func (p *printer) blankLine(off int) {
	if p.fresh || !p.writer.AtLineStart() || p.prevEnd >= off || off > len(p.content) {
		return
	}
	if bytes.Count(p.content[p.prevEnd:off], []byte{'\n'}) >= 2 {
		p.writer.Newline()
	}
}

func (p *printer) sameLine(from, to int) bool {
	if from >= to || to > len(p.content) {
		return true
	}
	return bytes.IndexByte(p.content[from:to], '\n') < 0
}

func (p *printer) printStmt(id ast.StmtID) {
	st := p.builder.Stmts.Get(id)
	if st == nil {
		return
	}
	w := p.writer
	switch st.Kind {
	case ast.StmtBlock:
		p.printBlock(id)
	case ast.StmtLet:
		d := p.builder.Stmts.Let(id)
		w.WriteString("let ")
		w.WriteString(p.spelling(d.Name, d.NameSpan))
		w.WriteString(" = ")
		p.printExpr(d.Value)
	case ast.StmtAssign:
		d := p.builder.Stmts.Assign(id)
		p.printExpr(d.Target)
		w.Space()
		w.WriteString(d.Op.String())
		w.Space()
		p.printExpr(d.Value)
	case ast.StmtIf:
		p.printIf(id)
	case ast.StmtWhile:
		d := p.builder.Stmts.While(id)
		w.WriteString("while ")
		p.printExpr(d.Cond)
		w.Space()
		p.printBlock(d.Body)
	case ast.StmtReturn:
		w.WriteString("return")
		if d := p.builder.Stmts.Return(id); d.Value.IsValid() {
			w.Space()
			p.printExpr(d.Value)
		}
	case ast.StmtFn:
		p.printFn(id)
	case ast.StmtExpr:
		p.printExpr(p.builder.Stmts.Expr(id).Expr)
	}
	if st.Semi {
		w.WriteString(";")
	}
}

func (p *printer) printBlock(id ast.StmtID) {
	d := p.builder.Stmts.Block(id)
	if d == nil {
		return
	}
	w := p.writer
	sp := p.builder.Stmts.Get(id).Span
	closeOff := int(sp.End) - 1
	if len(d.Stmts) == 0 && !p.hasCommentBefore(closeOff) {
		w.WriteString("{}")
		p.prevEnd = max(p.prevEnd, int(sp.End))
		return
	}
	w.WriteString("{")
	w.Newline()
	w.Indent()
	p.fresh = true
	p.prevEnd = max(p.prevEnd, int(sp.Start)+1)
	for _, s := range d.Stmts {
		p.printItem(s, closeOff)
		w.Newline()
	}
	p.leading(closeOff)
	if !w.AtLineStart() {
		w.Newline()
	}
	w.Dedent()
	w.WriteString("}")
	p.fresh = false
	p.prevEnd = max(p.prevEnd, int(sp.End))
}

func (p *printer) hasCommentBefore(off int) bool {
	return p.next < len(p.comments) && int(p.comments[p.next].Span.Start) < off
}

func (p *printer) printIf(id ast.StmtID) {
	w := p.writer
	for {
		d := p.builder.Stmts.If(id)
		w.WriteString("if ")
		p.printExpr(d.Cond)
		w.Space()
		p.printBlock(d.Then)
		if !d.Else.IsValid() {
			return
		}
		w.WriteString(" else ")
		if p.builder.Stmts.Get(d.Else).Kind != ast.StmtIf {
			p.printBlock(d.Else)
			return
		}
		id = d.Else
	}
}

func (p *printer) printFn(id ast.StmtID) {
	d := p.builder.Stmts.Fn(id)
	w := p.writer
	w.WriteString("fn ")
	w.WriteString(p.spelling(d.Name, d.NameSpan))
	w.WriteString("(")
	for i, param := range d.Params {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(p.spelling(param.Name, param.Span))
	}
	if d.Trailing {
		w.WriteString(",")
	}
	w.WriteString(") ")
	p.printBlock(d.Body)
}
