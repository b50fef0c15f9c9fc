package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lwfront/internal/testkit"
	"lwfront/internal/token"
)

func TestFormatASTPretty(t *testing.T) {
	p := testkit.Parse("tree.lw", []byte("x = 1 + y"))
	if p.Result.Failed() {
		t.Fatal("parse failed")
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, p.Builder, p.Result.File, p.FileSet); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"tree.lw (span: 1:1-1:10)",
		"└─ Assign = (span: 1:1-1:10)",
		"   ├─ Ident x (span: 1:1-1:2)",
		"   └─ Binary + (span: 1:5-1:10)",
		"      ├─ Lit int 1 (span: 1:5-1:6)",
		"      └─ Ident y (span: 1:9-1:10)",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestFormatASTJSON(t *testing.T) {
	p := testkit.Parse("tree.lw", []byte("fn f(a) { return a.b }"))
	if p.Result.Failed() {
		t.Fatal("parse failed")
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, p.Builder, p.Result.File); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "File" || len(root.Children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	fn := root.Children[0]
	if fn.Kind != "Fn" || fn.Fields["name"] != "f" {
		t.Errorf("fn node = %+v", fn)
	}
	member := fn.Children[0].Children[0].Children[0]
	if member.Kind != "Member" || member.Text != ".b" {
		t.Errorf("member node = %+v", member)
	}
}

func TestFormatTokens(t *testing.T) {
	p := testkit.Parse("tok.lw", []byte("let x // c\n= 1"))
	toks := append(p.Tokens, token.Token{Kind: token.EOF, Span: p.File.EOFSpan()})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, p.FileSet); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("want 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[2], "Assign") || !strings.Contains(lines[2], "leading: Space, LineComment, Newline") {
		t.Errorf("line 3 = %q", lines[2])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks, p.FileSet); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 5 || out[2].Line != 2 || out[4].Kind != "EOF" {
		t.Errorf("json tokens = %+v", out)
	}
}
