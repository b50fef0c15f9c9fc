package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lwfront/internal/ast"
	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/source"
)

type parseOutcome struct {
	res     Result
	builder *ast.Builder
	bag     *diag.Bag
}

// parseSource прогоняет лексер и парсер над виртуальным файлом.
func parseSource(t *testing.T, input string) parseOutcome {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lw", []byte(input))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.HintsForSize(len(input)), nil)
	res, err := ParseFile(context.Background(), fs, lexer.NewStream(lx), builder, Options{Reporter: reporter})
	if err != nil {
		t.Fatalf("ParseFile returned error: %v", err)
	}
	return parseOutcome{res: res, builder: builder, bag: bag}
}

func parseOK(t *testing.T, input string) parseOutcome {
	t.Helper()
	out := parseSource(t, input)
	if out.res.Failed() {
		for _, d := range out.bag.Items() {
			t.Errorf("unexpected diagnostic: %s %s at %s", d.Code.ID(), d.Message, d.Primary)
		}
		t.Fatalf("parse of %q failed", input)
	}
	if out.bag.Len() != 0 {
		t.Fatalf("successful parse left %d diagnostics", out.bag.Len())
	}
	return out
}

func parseFail(t *testing.T, input string) diag.Diagnostic {
	t.Helper()
	out := parseSource(t, input)
	if !out.res.Failed() {
		t.Fatalf("expected parse of %q to fail, got:\n%s", input, dump(out.builder, out.res.File))
	}
	if out.bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", out.bag.Len())
	}
	d, _ := out.bag.First()
	return d
}

// dump печатает дерево в виде S-выражений, удобно сравнивать строками.
func dump(b *ast.Builder, id ast.FileID) string {
	f := b.Files.Get(id)
	parts := make([]string, 0, len(f.Stmts))
	for _, st := range f.Stmts {
		parts = append(parts, dumpStmt(b, st))
	}
	return strings.Join(parts, " ")
}

func dumpStmt(b *ast.Builder, id ast.StmtID) string {
	st := b.Stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		var parts []string
		for _, s := range b.Stmts.Block(id).Stmts {
			parts = append(parts, dumpStmt(b, s))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case ast.StmtLet:
		d := b.Stmts.Let(id)
		return fmt.Sprintf("(let %s %s)", b.Name(d.Name), dumpExpr(b, d.Value))
	case ast.StmtAssign:
		d := b.Stmts.Assign(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, dumpExpr(b, d.Target), dumpExpr(b, d.Value))
	case ast.StmtIf:
		d := b.Stmts.If(id)
		if d.Else.IsValid() {
			return fmt.Sprintf("(if %s %s %s)", dumpExpr(b, d.Cond), dumpStmt(b, d.Then), dumpStmt(b, d.Else))
		}
		return fmt.Sprintf("(if %s %s)", dumpExpr(b, d.Cond), dumpStmt(b, d.Then))
	case ast.StmtWhile:
		d := b.Stmts.While(id)
		return fmt.Sprintf("(while %s %s)", dumpExpr(b, d.Cond), dumpStmt(b, d.Body))
	case ast.StmtReturn:
		d := b.Stmts.Return(id)
		if !d.Value.IsValid() {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", dumpExpr(b, d.Value))
	case ast.StmtFn:
		d := b.Stmts.Fn(id)
		names := make([]string, 0, len(d.Params))
		for _, p := range d.Params {
			names = append(names, b.Name(p.Name))
		}
		return fmt.Sprintf("(fn %s [%s] %s)", b.Name(d.Name), strings.Join(names, " "), dumpStmt(b, d.Body))
	case ast.StmtExpr:
		return dumpExpr(b, b.Stmts.Expr(id).Expr)
	}
	return "?"
}

func dumpExpr(b *ast.Builder, id ast.ExprID) string {
	ex := b.Exprs.Get(id)
	switch ex.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return b.Name(d.Name)
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return b.Name(d.Value)
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return fmt.Sprintf("(%s %s %s)", d.Op, dumpExpr(b, d.Left), dumpExpr(b, d.Right))
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return fmt.Sprintf("(%s%s)", d.Op, dumpExpr(b, d.Operand))
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return fmt.Sprintf("(group %s)", dumpExpr(b, d.Inner))
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, 0, len(d.Args)+1)
		args = append(args, dumpExpr(b, d.Target))
		for _, a := range d.Args {
			args = append(args, dumpExpr(b, a))
		}
		return "(call " + strings.Join(args, " ") + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return fmt.Sprintf("(index %s %s)", dumpExpr(b, d.Target), dumpExpr(b, d.Index))
	case ast.ExprMember:
		d, _ := b.Exprs.Member(id)
		return fmt.Sprintf("(. %s %s)", dumpExpr(b, d.Target), b.Name(d.Field))
	case ast.ExprList:
		d, _ := b.Exprs.List(id)
		elems := make([]string, 0, len(d.Elems))
		for _, e := range d.Elems {
			elems = append(elems, dumpExpr(b, e))
		}
		return "[" + strings.Join(elems, " ") + "]"
	}
	return "?"
}

func TestParseAssignment(t *testing.T) {
	out := parseOK(t, "x = 1")
	b := out.builder
	f := b.Files.Get(out.res.File)
	if len(f.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(f.Stmts))
	}
	asg := b.Stmts.Assign(f.Stmts[0])
	if asg == nil {
		t.Fatalf("expected assignment, got %s", b.Stmts.Get(f.Stmts[0]).Kind)
	}
	if asg.Op != ast.AssignPlain {
		t.Errorf("op = %s, want =", asg.Op)
	}
	ident, ok := b.Exprs.Ident(asg.Target)
	if !ok || b.Name(ident.Name) != "x" {
		t.Errorf("left side is not identifier x: %s", dumpExpr(b, asg.Target))
	}
	lit, ok := b.Exprs.Literal(asg.Value)
	if !ok || lit.Kind != ast.ExprLitInt || b.Name(lit.Value) != "1" {
		t.Errorf("right side is not number 1: %s", dumpExpr(b, asg.Value))
	}
	if got := b.StmtSpan(f.Stmts[0]); got.Start != 0 || got.End != 5 {
		t.Errorf("statement span = %s, want 0..5", got)
	}
	if out.res.Consumed != 3 {
		t.Errorf("consumed %d tokens, want 3", out.res.Consumed)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// only a comment\n", "/* block */"} {
		out := parseOK(t, input)
		f := out.builder.Files.Get(out.res.File)
		if f == nil {
			t.Fatalf("%q: no file node", input)
		}
		if len(f.Stmts) != 0 {
			t.Errorf("%q: expected empty program, got %d statements", input, len(f.Stmts))
		}
	}
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	d := parseFail(t, "x = ")
	if d.Code != diag.SynUnexpectedEOF {
		t.Fatalf("code = %s, want %s", d.Code.ID(), diag.SynUnexpectedEOF.ID())
	}
	if d.Primary.Start != 4 || d.Primary.End != 4 {
		t.Errorf("span = %s, want empty span at 4", d.Primary)
	}
	if d.Found != "end of input" {
		t.Errorf("found = %q", d.Found)
	}
	if len(d.Expected) != 1 || d.Expected[0] != "expression" {
		t.Errorf("expected = %v", d.Expected)
	}
	if d.Code.Class() != diag.ClassUnexpectedEOF {
		t.Errorf("class = %v", d.Code.Class())
	}
}

func TestParseLexErrorStopsParser(t *testing.T) {
	d := parseFail(t, "x @ 1")
	if d.Code != diag.LexUnknownChar {
		t.Fatalf("code = %s, want %s", d.Code.ID(), diag.LexUnknownChar.ID())
	}
	if d.Primary.Start != 2 {
		t.Errorf("offset = %d, want 2", d.Primary.Start)
	}
	if d.Code.Class() != diag.ClassLex {
		t.Errorf("class = %v", d.Code.Class())
	}
}

func TestParseUnexpectedToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		offset   uint32
		expected []string
		found    string
	}{
		{"stmt start", ")", 0, stmtStarters, "')'"},
		{"let without name", "let = 1", 4, []string{"identifier"}, "'='"},
		{"let without assign", "let x 1", 6, []string{"'='"}, "integer literal 1"},
		{"missing operand", "x = * 2", 4, []string{"expression"}, "'*'"},
		{"call separator", "f(a b)", 4, []string{"','", "')'"}, "identifier 'b'"},
		{"list separator", "[1 2]", 3, []string{"','", "']'"}, "integer literal 2"},
		{"empty arg slot", "f(,)", 2, []string{"expression", "')'"}, "','"},
		{"param not ident", "fn f(1) {}", 5, []string{"identifier", "')'"}, "integer literal 1"},
		{"if without block", "if x y", 5, []string{"'{'"}, "identifier 'y'"},
		{"else garbage", "if x {} else y", 13, []string{"'if'", "'{'"}, "identifier 'y'"},
		{"member needs name", "a.(b)", 2, []string{"identifier"}, "'('"},
		{"stray close", "x = 1 }", 6, stmtStarters, "'}'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseFail(t, tt.input)
			if d.Code != diag.SynUnexpectedToken {
				t.Fatalf("code = %s (%s), want %s", d.Code.ID(), d.Message, diag.SynUnexpectedToken.ID())
			}
			if d.Primary.Start != tt.offset {
				t.Errorf("offset = %d, want %d", d.Primary.Start, tt.offset)
			}
			if strings.Join(d.Expected, "|") != strings.Join(tt.expected, "|") {
				t.Errorf("expected = %v, want %v", d.Expected, tt.expected)
			}
			if d.Found != tt.found {
				t.Errorf("found = %q, want %q", d.Found, tt.found)
			}
		})
	}
}

func TestParseUnclosedDelimiterSuggestsFix(t *testing.T) {
	tests := []struct {
		input  string
		insert string
	}{
		{"f(1, 2", ")"},
		{"x = (1 + 2", ")"},
		{"a[0", "]"},
		{"[1, 2", "]"},
		{"while x { y = 1", "}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := parseFail(t, tt.input)
			if d.Code != diag.SynUnexpectedEOF {
				t.Fatalf("code = %s, want %s", d.Code.ID(), diag.SynUnexpectedEOF.ID())
			}
			if int(d.Primary.Start) != len(tt.input) {
				t.Errorf("span %s is not at end of input", d.Primary)
			}
			found := false
			for _, fix := range d.Fixes {
				for _, e := range fix.Edits {
					if e.NewText == tt.insert {
						found = true
					}
				}
			}
			if !found {
				t.Errorf("no fix inserting %q in %+v", tt.insert, d.Fixes)
			}
		})
	}
}

func TestParseInvalidAssignTarget(t *testing.T) {
	for _, input := range []string{"1 = 2", "f() = 1", "(x) = 1", "a + b += 1"} {
		t.Run(input, func(t *testing.T) {
			d := parseFail(t, input)
			if d.Code != diag.SynUnexpectedToken {
				t.Fatalf("code = %s", d.Code.ID())
			}
			at := strings.Index(input, "=")
			if input[at-1] == '+' {
				at--
			}
			if int(d.Primary.Start) != at {
				t.Errorf("offset = %d, want %d (the operator)", d.Primary.Start, at)
			}
			if len(d.Notes) != 1 {
				t.Errorf("expected a note on the target, got %d", len(d.Notes))
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b / c", "(/ (/ a b) c)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"a != b == c", "(== (!= a b) c)"},
		{"-a * b", "(* (-a) b)"},
		{"!-x", "(!(-x))"},
		{"-f(x)", "(-(call f x))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"a.b.c(1)[2]", "(index (call (. (. a b) c) 1) 2)"},
		{"f(1, 2,)", "(call f 1 2)"},
		{"f()", "(call f)"},
		{"[]", "[]"},
		{"[1, [2], \"s\",]", "[1 [2] \"s\"]"},
		{"x = true", "(= x true)"},
		{"x += nil", "(+= x nil)"},
		{"a[i] -= 1.5", "(-= (index a i) 1.5)"},
		{"o.f *= 2; o.g /= 3; o.h %= 4", "(*= (. o f) 2) (/= (. o g) 3) (%= (. o h) 4)"},
		{"let x = 1 let y = x", "(let x 1) (let y x)"},
		{"let x = 1; x", "(let x 1) x"},
		{"fn add(a, b,) { return a + b }", "(fn add [a b] {(return (+ a b))})"},
		{"fn nop() {}", "(fn nop [] {})"},
		{"fn f() { return }", "(fn f [] {(return)})"},
		{"fn f() { return; }", "(fn f [] {(return)})"},
		{"return", "(return)"},
		{"while i < 10 { i += 1 }", "(while (< i 10) {(+= i 1)})"},
		{"if a { x } else if b { y } else { z }", "(if a {x} (if b {y} {z}))"},
		{"if a {} else {}", "(if a {} {})"},
		{"{ { x } }", "{{x}}"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out := parseOK(t, tt.input)
			if got := dump(out.builder, out.res.File); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestParseSemicolonAndTrailingFlags(t *testing.T) {
	out := parseOK(t, "f(a,); g(); [1,]")
	b := out.builder
	f := b.Files.Get(out.res.File)
	if len(f.Stmts) != 3 {
		t.Fatalf("want 3 statements, got %d", len(f.Stmts))
	}
	if !b.Stmts.Get(f.Stmts[0]).Semi || !b.Stmts.Get(f.Stmts[1]).Semi || b.Stmts.Get(f.Stmts[2]).Semi {
		t.Errorf("semicolon flags are wrong")
	}
	call, _ := b.Exprs.Call(b.Stmts.Expr(f.Stmts[0]).Expr)
	if !call.Trailing {
		t.Errorf("f(a,) should record trailing comma")
	}
	call, _ = b.Exprs.Call(b.Stmts.Expr(f.Stmts[1]).Expr)
	if call.Trailing {
		t.Errorf("g() has no trailing comma")
	}
	list, _ := b.Exprs.List(b.Stmts.Expr(f.Stmts[2]).Expr)
	if !list.Trailing {
		t.Errorf("[1,] should record trailing comma")
	}
	// ';' не входит в span statement
	if sp := b.StmtSpan(f.Stmts[0]); sp.End != 5 {
		t.Errorf("span of f(a,) = %s, want end 5", sp)
	}
}

func TestParseSpansNest(t *testing.T) {
	input := "fn f(a) {\n  if a > 1 { return [a, -a][0] } else { x.y = f(a - 1) }\n}\nwhile true { }"
	out := parseOK(t, input)
	b := out.builder
	root := ast.NodeRef{File: out.res.File}
	fileSpan := b.Span(root)
	if fileSpan.Start != 0 || int(fileSpan.End) != len(input) {
		t.Fatalf("file span = %s", fileSpan)
	}
	b.Inspect(root, func(n ast.NodeRef) bool {
		parent := b.Span(n)
		if !fileSpan.Contains(parent) {
			t.Errorf("span %s outside input", parent)
		}
		for _, c := range b.Children(n) {
			if cs := b.Span(c); !parent.Contains(cs) {
				t.Errorf("child span %s not inside parent %s", cs, parent)
			}
		}
		return true
	})
}

func TestParseIdempotent(t *testing.T) {
	input := "let a = [1, 2, 3]\nfn g(x) { return x * 2 + a[0] }\nif g(1) == 2 { a.b = !false }"
	first := parseOK(t, input)
	second := parseOK(t, input)
	if dump(first.builder, first.res.File) != dump(second.builder, second.res.File) {
		t.Fatalf("two parses of the same input differ")
	}
}

func TestParseNoTreeOnError(t *testing.T) {
	out := parseSource(t, "let a = 1\nlet b = (2 +\n")
	if !out.res.Failed() {
		t.Fatalf("expected failure")
	}
	if out.res.File.IsValid() {
		t.Fatalf("failed parse must not return a file")
	}
	if out.builder.Files.Arena.Len() != 0 {
		t.Errorf("no file node should have been allocated")
	}
}

func TestParseContextCancelled(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lw", []byte("x = 1\ny = 2"))
	bag := diag.NewBag(0)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := ParseFile(ctx, fs, lexer.NewStream(lx), ast.NewBuilder(ast.Hints{}, nil), Options{Reporter: diag.BagReporter{Bag: bag}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res.File.IsValid() {
		t.Errorf("cancelled parse returned a tree")
	}
	if bag.Len() != 0 {
		t.Errorf("cancellation is not a diagnostic")
	}
}

func TestParseDeepNesting(t *testing.T) {
	depth := 200
	input := strings.Repeat("(", depth) + "x" + strings.Repeat(")", depth)
	out := parseOK(t, input)
	f := out.builder.Files.Get(out.res.File)
	if len(f.Stmts) != 1 {
		t.Fatalf("want one statement")
	}
}

// nestedInput строит n вложенных уровней; open повторяется n раз, затем
// inner, затем close n раз.
func nestedInput(n int, open, inner, closer string) string {
	return strings.Repeat(open, n) + inner + strings.Repeat(closer, n)
}

var nestingShapes = []struct {
	name   string
	open   string
	inner  string
	closer string
	lead   int // смещение скобки внутри open
}{
	{name: "groups", open: "(", inner: "x", closer: ")"},
	{name: "lists", open: "[", closer: "]"},
	{name: "calls", open: "f(", closer: ")", lead: 1},
	{name: "index", open: "a[", inner: "0", closer: "]", lead: 1},
	{name: "blocks", open: "{", closer: "}"},
}

func TestParseNestingAtLimit(t *testing.T) {
	for _, tt := range nestingShapes {
		t.Run(tt.name, func(t *testing.T) {
			out := parseOK(t, nestedInput(MaxNestingDepth, tt.open, tt.inner, tt.closer))
			f := out.builder.Files.Get(out.res.File)
			if len(f.Stmts) != 1 {
				t.Fatalf("want one statement, got %d", len(f.Stmts))
			}
		})
	}
}

func TestParseNestingOverLimit(t *testing.T) {
	for _, tt := range nestingShapes {
		t.Run(tt.name, func(t *testing.T) {
			d := parseFail(t, nestedInput(MaxNestingDepth+1, tt.open, tt.inner, tt.closer))
			if d.Code != diag.SynNestingTooDeep {
				t.Fatalf("code = %s, want %s", d.Code.ID(), diag.SynNestingTooDeep.ID())
			}
			want := uint32(MaxNestingDepth*len(tt.open) + tt.lead)
			if d.Primary.Start != want || d.Primary.End != want+1 {
				t.Errorf("span = %s, want the opener at %d", d.Primary, want)
			}
			if d.Code.Class() != diag.ClassUnexpectedToken {
				t.Errorf("class = %v", d.Code.Class())
			}
		})
	}
}

func TestParseNestingOverLimitUnclosed(t *testing.T) {
	// первая ошибка - глубина, а не конец ввода
	d := parseFail(t, strings.Repeat("(", 1<<20))
	if d.Code != diag.SynNestingTooDeep {
		t.Fatalf("code = %s, want %s", d.Code.ID(), diag.SynNestingTooDeep.ID())
	}
}

func TestParseNestingDepthIsPerPath(t *testing.T) {
	deep := nestedInput(MaxNestingDepth, "(", "x", ")")
	inBlock := nestedInput(MaxNestingDepth-1, "(", "x", ")")
	out := parseOK(t, deep+";\n"+deep+";\n{ "+inBlock+" }")
	f := out.builder.Files.Get(out.res.File)
	if len(f.Stmts) != 3 {
		t.Fatalf("want three statements, got %d", len(f.Stmts))
	}
}
