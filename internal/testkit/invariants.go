package testkit

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"

	"lwfront/internal/ast"
	"lwfront/internal/format"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span is the whole content of sf
// 2) every node span lies inside file.Span and points to sf
// 3) every parent span contains the spans of its children
// 4) siblings appear in source order and do not overlap
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not cover content of length %d", f.Span, lenContent)
	}

	var firstErr error
	b.Inspect(ast.NodeRef{File: fileID}, func(n ast.NodeRef) bool {
		if firstErr != nil {
			return false
		}
		parent := b.Span(n)
		// 2)
		if parent.File != sf.ID {
			firstErr = fmt.Errorf("node span file mismatch: got=%d want=%d", parent.File, sf.ID)
			return false
		}
		if !f.Span.Contains(parent) {
			firstErr = fmt.Errorf("node span %v is outside file span %v", parent, f.Span)
			return false
		}
		if !n.IsFile() && parent.Empty() {
			firstErr = fmt.Errorf("empty node span %v", parent)
			return false
		}
		// 3) и 4)
		var prevEnd uint32
		for i, c := range b.Children(n) {
			cs := b.Span(c)
			if !parent.Contains(cs) {
				firstErr = fmt.Errorf("child span %v is outside parent span %v", cs, parent)
				return false
			}
			if i > 0 && cs.Start < prevEnd {
				firstErr = fmt.Errorf("child span %v overlaps previous sibling ending at %d", cs, prevEnd)
				return false
			}
			prevEnd = cs.End
		}
		return true
	})
	return firstErr
}

// CheckLeaves verifies that the tree regenerates exactly the tokens the
// parser consumed: same kinds in the same order, and the same span and text
// for every identifier and literal. Identifier text is compared after NFC
// normalization, the form names are interned in. consumed must not contain EOF.
func CheckLeaves(b *ast.Builder, fileID ast.FileID, consumed []token.Token) error {
	got := format.Tokens(b, fileID)
	if len(got) != len(consumed) {
		return fmt.Errorf("tree yields %d tokens, parser consumed %d", len(got), len(consumed))
	}
	for i := range got {
		g, w := got[i], consumed[i]
		if g.Kind != w.Kind {
			return fmt.Errorf("token %d: tree has %s, source has %s at %v", i, g.Kind, w.Kind, w.Span)
		}
		if g.Span.Empty() {
			continue
		}
		if g.Span != w.Span {
			return fmt.Errorf("token %d (%s): tree span %v, source span %v", i, g.Kind, g.Span, w.Span)
		}
		want := w.Text
		if g.Kind == token.Ident {
			// имена в дереве интернированы в NFC
			want = norm.NFC.String(want)
		}
		if g.Text != want {
			return fmt.Errorf("token %d (%s): tree text %q, source text %q", i, g.Kind, g.Text, w.Text)
		}
	}
	return nil
}
