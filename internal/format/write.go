package format

import (
	"bytes"
	"strings"
)

// Writer accumulates output and tracks indentation.
type Writer struct {
	buf     bytes.Buffer
	opt     Options
	depth   int
	lineBeg bool
}

func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt, lineBeg: true}
}

func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.lineBeg {
		w.writeIndent()
		w.lineBeg = false
	}
	w.buf.WriteString(s)
}

func (w *Writer) Space() { w.WriteString(" ") }

func (w *Writer) Newline() {
	w.buf.WriteByte('\n')
	w.lineBeg = true
}

// AtLineStart reports whether nothing has been written on the current line.
func (w *Writer) AtLineStart() bool { return w.lineBeg }

func (w *Writer) Indent()  { w.depth++ }
func (w *Writer) Dedent() { w.depth-- }

func (w *Writer) writeIndent() {
	if w.depth <= 0 {
		return
	}
	if w.opt.UseTabs {
		w.buf.WriteString(strings.Repeat("\t", w.depth))
		return
	}
	w.buf.WriteString(strings.Repeat(" ", w.depth*w.opt.IndentWidth))
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
