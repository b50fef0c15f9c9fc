package lexer

import (
	"testing"

	"lwfront/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.lw", []byte("ab"))
	c := NewCursor(fs.Get(id))

	if c.Peek() != 'a' {
		t.Fatalf("Peek() = %q", c.Peek())
	}
	m := c.Mark()
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	if !c.Eat('a') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatal("expected EOF")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 || sp.File != id {
		t.Errorf("SpanFrom = %+v", sp)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Errorf("Reset: Off = %d", c.Off)
	}
	if _, _, ok := c.Peek2(); !ok {
		t.Error("Peek2 after reset")
	}
}
