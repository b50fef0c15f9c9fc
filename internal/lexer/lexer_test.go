package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"lwfront/internal/diag"
	"lwfront/internal/lexer"
	"lwfront/internal/source"
	"lwfront/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.lw", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens собирает все токены до EOF включительно
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// expectTokens проверяет последовательность токенов (без EOF)
func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\nInput: %q\nTokens: %v\nErrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	if len(reporter.diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", reporter.ErrorMessages())
	}
}

// expectSingleToken проверяет, что вход создаёт ровно один токен
func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tok := lx.Next()
	if tok.Kind != expectedKind {
		t.Errorf("expected kind %v, got %v (errors: %v)", expectedKind, tok.Kind, reporter.ErrorMessages())
	}
	if tok.Text != expectedText {
		t.Errorf("expected text %q, got %q", expectedText, tok.Text)
	}
	if next := lx.Next(); next.Kind != token.EOF {
		t.Errorf("expected EOF after %q, got %v", input, next.Kind)
	}
}

// expectLexError проверяет код и смещение единственной ошибки
func expectLexError(t *testing.T, input string, code diag.Code, start, end uint32) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("%q: expected exactly one diagnostic, got %v", input, reporter.ErrorMessages())
	}
	d := reporter.diagnostics[0]
	if d.Code != code {
		t.Errorf("%q: code = %s, want %s", input, d.Code.ID(), code.ID())
	}
	if d.Primary.Start != start || d.Primary.End != end {
		t.Errorf("%q: span = %d..%d, want %d..%d", input, d.Primary.Start, d.Primary.End, start, end)
	}
	if n := len(tokens); n < 2 || tokens[n-2].Kind != token.Invalid {
		t.Errorf("%q: expected Invalid token before EOF, got %v", input, tokensToString(tokens))
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"foo", "foo"},
		{"_bar", "_bar"},
		{"_", "_"},
		{"x123", "x123"},
		{"camelCase", "camelCase"},
		{"переменная", "переменная"},
		{"名前", "名前"},
		{"Let", "Let"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, token.Ident, tt.text)
		})
	}
}

func TestKeywords(t *testing.T) {
	tests := map[string]token.Kind{
		"let": token.KwLet, "fn": token.KwFn, "if": token.KwIf, "else": token.KwElse,
		"while": token.KwWhile, "return": token.KwReturn, "true": token.KwTrue,
		"false": token.KwFalse, "nil": token.KwNil,
	}
	for input, kind := range tests {
		expectSingleToken(t, input, kind, input)
	}
	// ключевое слово - только целый идентификатор
	expectSingleToken(t, "letter", token.Ident, "letter")
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"42", token.IntLit},
		{"1_000_000", token.IntLit},
		{"0x2A", token.IntLit},
		{"0b1010", token.IntLit},
		{"0o755", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"1e9", token.FloatLit},
		{"1.5e-3", token.FloatLit},
		{"2E+10", token.FloatLit},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectSingleToken(t, tt.input, tt.kind, tt.input)
		})
	}
}

func TestNumberFollowedByDot(t *testing.T) {
	expectTokens(t, "1.foo", token.IntLit, token.Dot, token.Ident)
	expectTokens(t, "xs[0].y", token.Ident, token.LBracket, token.IntLit, token.RBracket, token.Dot, token.Ident)
}

func TestStrings(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.StringLit, `"hello"`)
	expectSingleToken(t, `""`, token.StringLit, `""`)
	expectSingleToken(t, `"a\"b"`, token.StringLit, `"a\"b"`)
	expectSingleToken(t, `"привет"`, token.StringLit, `"привет"`)
}

func TestOperatorsMaximalMunch(t *testing.T) {
	expectTokens(t, "a+=b==c", token.Ident, token.PlusAssign, token.Ident, token.EqEq, token.Ident)
	expectTokens(t, "!a != b", token.Bang, token.Ident, token.BangEq, token.Ident)
	expectTokens(t, "<= < >= > && ||", token.LtEq, token.Lt, token.GtEq, token.Gt, token.AndAnd, token.OrOr)
	expectTokens(t, "-= *= /= %= =", token.MinusAssign, token.StarAssign, token.SlashAssign, token.PercentAssign, token.Assign)
	expectTokens(t, "(){}[],;.:", token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Semicolon, token.Dot, token.Colon)
}

func TestTriviaIsNotTokens(t *testing.T) {
	input := "// header\nlet /* inline /* nested */ */ x\r\n\t= 1 // tail"
	expectTokens(t, input, token.KwLet, token.Ident, token.Assign, token.IntLit)

	lx, _ := makeTestLexer(input)
	first := lx.Next()
	if len(first.Leading) != 2 || first.Leading[0].Kind != token.TriviaLineComment || first.Leading[1].Kind != token.TriviaNewline {
		t.Fatalf("leading trivia of 'let' = %+v", first.Leading)
	}
	second := lx.Next()
	if len(second.Leading) != 3 || second.Leading[1].Kind != token.TriviaBlockComment {
		t.Fatalf("leading trivia of 'x' = %+v", second.Leading)
	}
	if second.Leading[1].Text != "/* inline /* nested */ */" {
		t.Errorf("block comment text = %q", second.Leading[1].Text)
	}
}

func TestTailKeepsTriviaBeforeEOF(t *testing.T) {
	lx, _ := makeTestLexer("x // tail\n/* end */")
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected Ident, got %v", tok.Kind)
	}
	if len(lx.Tail()) != 0 {
		t.Fatalf("tail filled before EOF: %+v", lx.Tail())
	}
	if eof := lx.Next(); eof.Kind != token.EOF || len(eof.Leading) != 0 {
		t.Fatalf("expected bare EOF, got %v %+v", eof.Kind, eof.Leading)
	}
	lx.Next()

	var comments []string
	for _, tr := range lx.Tail() {
		if tr.Kind == token.TriviaLineComment || tr.Kind == token.TriviaBlockComment {
			comments = append(comments, tr.Text)
		}
	}
	if strings.Join(comments, "|") != "// tail|/* end */" {
		t.Fatalf("tail comments = %q", comments)
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "let name = fn_call(1.5, \"s\") // c\n"
	lx, _ := makeTestLexer(input)
	for _, tok := range collectAllTokens(lx) {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("%v: span text %q != token text %q", tok.Kind, got, tok.Text)
		}
	}
}

func TestEOFRepeats(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for range 3 {
		tok := lx.Next()
		if tok.Kind != token.EOF || tok.Span.Start != 1 || !tok.Span.Empty() {
			t.Fatalf("expected EOF at 1, got %v %v", tok.Kind, tok.Span)
		}
	}
}

func TestEmptyAndBlankInput(t *testing.T) {
	expectTokens(t, "")
	expectTokens(t, "  \n\t// only comment\n/* block */")
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		code       diag.Code
		start, end uint32
	}{
		{"unknown char", "x @ 1", diag.LexUnknownChar, 2, 3},
		{"unknown unicode char", "a → b", diag.LexUnknownChar, 2, 5},
		{"invalid utf8", "a \xff b", diag.LexInvalidUTF8, 2, 3},
		{"invalid utf8 in string", "\"a\xc3\"", diag.LexInvalidUTF8, 2, 3},
		{"invalid utf8 in comment", "// \xfe\nx", diag.LexInvalidUTF8, 3, 4},
		{"unterminated string", `x = "abc`, diag.LexUnterminatedString, 4, 8},
		{"newline in string", "\"ab\ncd\"", diag.LexUnterminatedString, 0, 3},
		{"unterminated comment", "x /* a /* b */", diag.LexUnterminatedBlockComment, 2, 14},
		{"bad suffix", "12ab", diag.LexBadNumber, 0, 4},
		{"empty hex", "0x", diag.LexBadNumber, 0, 2},
		{"bad binary", "0b102", diag.LexBadNumber, 0, 5},
		{"bad exponent", "1e+", diag.LexBadNumber, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectLexError(t, tt.input, tt.code, tt.start, tt.end)
		})
	}
}

func TestLexerStopsAfterFirstError(t *testing.T) {
	lx, reporter := makeTestLexer("a @ b # c")
	tokens := collectAllTokens(lx)
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %v", reporter.ErrorMessages())
	}
	if got := tokensToString(tokens); got != `[Ident("a"), Invalid("@"), EOF("")]` {
		t.Errorf("tokens = %s", got)
	}
	if !lx.Failed() {
		t.Error("Failed() = false")
	}
}

func TestNilReporter(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("nil.lw", []byte("@"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("got %v", tok.Kind)
	}
}
