package format_test

import (
	"slices"
	"testing"

	"lwfront/internal/ast"
	"lwfront/internal/format"
	"lwfront/internal/source"
	"lwfront/internal/testkit"
	"lwfront/internal/token"
)

func parseSource(t *testing.T, src string) (*source.File, *ast.Builder, ast.FileID) {
	t.Helper()
	p := testkit.Parse("fmt.lw", []byte(src))
	if p.Result.Failed() {
		d, _ := p.Bag.First()
		t.Fatalf("parse failed: %s: %s", d.Code.ID(), d.Message)
	}
	return p.File, p.Builder, p.Result.File
}

func TestFormatFile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"assign", "x=1", "x = 1\n"},
		{"semicolons kept", "let a=1;b+=a ;", "let a = 1;\nb += a;\n"},
		{"unary and binary", "x = - a*(b+ !c)", "x = -a * (b + !c)\n"},
		{"postfix", "a . b [ 0 ] ( 1 , 2 , )", "a.b[0](1, 2,)\n"},
		{"list", "[ 1,2 ,[ ] ]", "[1, 2, []]\n"},
		{"fn", "fn f( a,b ){return a}", "fn f(a, b) {\n    return a\n}\n"},
		{"empty blocks", "fn f(){} while x{}", "fn f() {}\nwhile x {}\n"},
		{"else if", "if a{x}else if b{y}else{z}", "if a {\n    x\n} else if b {\n    y\n} else {\n    z\n}\n"},
		{"comment inside statement moves to its end", "// c\nx /* y */ = 1", "// c\nx = 1 /* y */\n"},
		{"nested", "{{return;}}", "{\n    {\n        return;\n    }\n}\n"},
		{"identifiers kept as written", "let \u2126=1\nx=\u2126.\u2126\nfn \u2126(\u2126){}", "let \u2126 = 1\nx = \u2126.\u2126\nfn \u2126(\u2126) {}\n"},
		{"literals kept as written", "s = \"a\\tb\" + 0x1F + 1_000 + .5", "s = \"a\\tb\" + 0x1F + 1_000 + .5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, b, fid := parseSource(t, tt.src)
			out, err := format.FormatFile(sf, b, fid, format.Options{})
			if err != nil {
				t.Fatalf("FormatFile: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("format mismatch:\nwant %q\ngot  %q", tt.want, string(out))
			}
		})
	}
}

func TestFormatTabs(t *testing.T) {
	sf, b, fid := parseSource(t, "while x { y }")
	out, err := format.FormatFile(sf, b, fid, format.Options{UseTabs: true})
	if err != nil {
		t.Fatal(err)
	}
	if want := "while x {\n\ty\n}\n"; string(out) != want {
		t.Fatalf("want %q, got %q", want, string(out))
	}
}

func TestFormatRejectsInvalidFile(t *testing.T) {
	sf, _, _ := parseSource(t, "x")
	if _, err := format.FormatFile(nil, ast.NewBuilder(ast.Hints{}, nil), 1, format.Options{}); err == nil {
		t.Errorf("nil source file must fail")
	}
	if _, err := format.FormatFile(sf, nil, 1, format.Options{}); err == nil {
		t.Errorf("nil builder must fail")
	}
	b := ast.NewBuilder(ast.Hints{}, nil)
	if _, err := format.FormatFile(sf, b, ast.NoFileID, format.Options{}); err == nil {
		t.Errorf("invalid file id must fail")
	}
}

func TestFormatKeepsComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"header trailing and own-line",
			"// license header\nlet x = 1 // the answer\n/* keep me */\nx += 2\n",
			"// license header\nlet x = 1 // the answer\n/* keep me */\nx += 2\n",
		},
		{"inline block before statement", "/* a */ x=1", "/* a */ x = 1\n"},
		{"only comments", "// one\n\n\n// two", "// one\n\n// two\n"},
		{"blank lines collapse", "x=1\n\n\n\ny=2\nz=3", "x = 1\n\ny = 2\nz = 3\n"},
		{"in block", "while x {\n// lead\ny // tail\n// before close\n}", "while x {\n    // lead\n    y // tail\n    // before close\n}\n"},
		{"empty block keeps comment", "fn f() { /* todo */ }", "fn f() {\n    /* todo */\n}\n"},
		{"line comment inside expression", "x = f(1, // one\n2)", "x = f(1, 2) // one\n"},
		{"after semicolon", "x = 1; // c\ny = 2", "x = 1; // c\ny = 2\n"},
		{"comment at end of file", "x\n// bye", "x\n// bye\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sf, b, fid := parseSource(t, tt.src)
			out, err := format.FormatFile(sf, b, fid, format.Options{})
			if err != nil {
				t.Fatalf("FormatFile: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("format mismatch:\nwant %q\ngot  %q", tt.want, string(out))
			}
			// второй проход ничего не меняет
			sf2, b2, fid2 := parseSource(t, string(out))
			again, err := format.FormatFile(sf2, b2, fid2, format.Options{})
			if err != nil {
				t.Fatalf("FormatFile: %v", err)
			}
			if string(again) != string(out) {
				t.Fatalf("not idempotent:\nfirst  %q\nsecond %q", out, again)
			}
		})
	}
}

func TestTokensMatchSource(t *testing.T) {
	src := "let xs = [1, 2,];\nfn g(a,) { return -a.b[0] }\nif g(xs) != nil { g(1) } else { xs[0] %= 2 }"
	p := testkit.Parse("fmt.lw", []byte(src))
	if p.Result.Failed() {
		t.Fatalf("parse failed")
	}
	got := format.Tokens(p.Builder, p.Result.File)
	if !slices.Equal(kinds(got), kinds(p.Tokens)) {
		t.Fatalf("token kinds differ:\ntree   %v\nsource %v", kinds(got), kinds(p.Tokens))
	}
}

func TestCheckRoundTrip(t *testing.T) {
	srcs := []string{
		"",
		"x=1",
		"fn f(a,b,){ if a<b {return a} else {return b}; }",
		"while !done { i += 1; xs[i] = f(i)(\"s\"); }",
		"let a = - - 1\n{}\n-a",
		"// head\nlet x = 1 // tail\n/* keep */\nx += 2\n",
		"fn f(a, // first\n b) { /* empty */ }\n\n\n// end",
		"if a /* cond */ { x } // after\nelse { y /* in */ }",
		"let \u2126 = 1\n\u03a9 += \u2126",
	}
	for _, src := range srcs {
		sf, _, _ := parseSource(t, src)
		if ok, msg := format.CheckRoundTrip(sf, format.Options{}); !ok {
			t.Errorf("%q: %s", src, msg)
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}
