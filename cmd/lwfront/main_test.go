package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lwfront/internal/store"
	"lwfront/internal/version"
)

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// checkDir holds one good and one broken file.
func checkDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "a.lw", "let x = 1\nx = x + 2\n")
	writeFile(t, dir, "b.lw", "x = ")
	return dir
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lw", "x = 1\n")
	bad := writeFile(t, dir, "bad.lw", "x = ")
	lexBad := writeFile(t, dir, "lex.lw", "x @ 1")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"assignment", []string{"parse", good}, 0, "Assign =", ""},
		{"json", []string{"parse", "--format", "json", good}, 0, "\"Assign\"", ""},
		{"unexpected end", []string{"parse", bad}, 1, "", "SYN2002"},
		{"lex error", []string{"parse", lexBad}, 1, "", "LEX1001"},
		{"missing file", []string{"parse", filepath.Join(dir, "nope.lw")}, 2, "", "failed to stat path"},
		{"bad format", []string{"parse", "--format", "xml", good}, 2, "", "unknown format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			if res.code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", res.code, tt.wantCode, res.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(res.stdout, tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, res.stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(res.stderr, tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, res.stderr)
			}
		})
	}
}

func TestParseCommandPositions(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.lw", "x = ")
	res := runCLI(t, "parse", bad)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	// offset 4 это колонка 5
	if !strings.Contains(res.stderr, "bad.lw:1:5") {
		t.Fatalf("expected position 1:5 in stderr:\n%s", res.stderr)
	}
	if res.stdout != "" {
		t.Fatalf("failed parse must not print a tree, got:\n%s", res.stdout)
	}
}

func TestParseCommandDirectory(t *testing.T) {
	dir := checkDir(t)
	res := runCLI(t, "parse", "--format", "json", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	var payload []struct {
		Path string          `json:"path"`
		OK   bool            `json:"ok"`
		AST  json.RawMessage `json:"ast"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, res.stdout)
	}
	if len(payload) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(payload))
	}
	if !payload[0].OK || len(payload[0].AST) == 0 {
		t.Errorf("a.lw should parse: %+v", payload[0])
	}
	if payload[1].OK || len(payload[1].AST) != 0 {
		t.Errorf("b.lw should fail without a tree: %+v", payload[1])
	}
	if !strings.Contains(res.stderr, "SYN2002") {
		t.Errorf("stderr missing diagnostic:\n%s", res.stderr)
	}
}

func TestTokenizeCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lw", "x = 1")
	bad := writeFile(t, dir, "bad.lw", "x @ 1")

	res := runCLI(t, "tokenize", good)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	for _, want := range []string{"Ident", "Assign", "EOF"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}

	res = runCLI(t, "tokenize", bad)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if !strings.Contains(res.stdout, "Invalid") {
		t.Errorf("expected the invalid token in stdout:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "LEX1001") || !strings.Contains(res.stderr, "bad.lw:1:3") {
		t.Errorf("stderr missing LEX1001 at 1:3:\n%s", res.stderr)
	}
}

func TestCheckCommandShort(t *testing.T) {
	dir := checkDir(t)
	res := runCLI(t, "check", "--format", "short", "--ui", "off", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr: %s)", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one diagnostic line, got %d:\n%s", len(lines), res.stdout)
	}
	if !strings.HasPrefix(lines[0], "error SYN2002 ") || !strings.Contains(lines[0], "b.lw:1:5") {
		t.Fatalf("unexpected diagnostic line %q", lines[0])
	}
	if !strings.Contains(res.stderr, "checked 2 files: 1 with errors, 0 cached") {
		t.Fatalf("missing summary:\n%s", res.stderr)
	}
}

func TestCheckCommandQuiet(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.lw", "x = 1\n")
	res := runCLI(t, "--quiet", "check", "--format", "short", good)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	if res.stdout != "" || res.stderr != "" {
		t.Fatalf("expected no output, got stdout=%q stderr=%q", res.stdout, res.stderr)
	}
}

func TestCheckCommandJSON(t *testing.T) {
	dir := checkDir(t)
	res := runCLI(t, "check", "--format", "json", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	if !json.Valid([]byte(res.stdout)) {
		t.Fatalf("stdout is not JSON:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "SYN2002") {
		t.Fatalf("JSON lacks the diagnostic code:\n%s", res.stdout)
	}
	if strings.Contains(res.stderr, "checked") {
		t.Fatalf("summary must not mix with JSON output:\n%s", res.stderr)
	}
}

func TestCheckCommandSarif(t *testing.T) {
	dir := checkDir(t)
	res := runCLI(t, "check", "--format", "sarif", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if _, ok := doc["runs"]; !ok {
		t.Fatalf("sarif document has no runs: %s", res.stdout)
	}
}

func TestCheckCommandIndex(t *testing.T) {
	dir := checkDir(t)
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	res := runCLI(t, "check", "--format", "short", "--index", dbPath, dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1 (stderr: %s)", res.code, res.stderr)
	}

	ctx := context.Background()
	ix, err := store.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer ix.Close()
	run, err := ix.LastRun(ctx)
	if err != nil {
		t.Fatalf("LastRun: %v", err)
	}
	if len(run.Files) != 2 || run.Failed() != 1 {
		t.Fatalf("expected 2 files with 1 failure, got %d/%d", len(run.Files), run.Failed())
	}
	if run.Version != version.Version().String() {
		t.Errorf("run version = %q", run.Version)
	}
	counts, err := ix.CodeCounts(ctx)
	if err != nil {
		t.Fatalf("CodeCounts: %v", err)
	}
	if counts["SYN2002"] != 1 {
		t.Errorf("expected one SYN2002, got %v", counts)
	}
}

func TestCheckCommandCache(t *testing.T) {
	dir := checkDir(t)
	cacheDir := t.TempDir()
	args := []string{"check", "--format", "short", "--cache", "--cache-dir", cacheDir, dir}

	first := runCLI(t, args...)
	second := runCLI(t, args...)
	if first.code != 1 || second.code != 1 {
		t.Fatalf("exit codes = %d, %d; want 1, 1", first.code, second.code)
	}
	if first.stdout != second.stdout {
		t.Fatalf("cached run differs:\n%s\nvs\n%s", first.stdout, second.stdout)
	}
	if !strings.Contains(second.stderr, "2 cached") {
		t.Fatalf("second run should be served from cache:\n%s", second.stderr)
	}
}

func TestCheckCommandMissingPath(t *testing.T) {
	res := runCLI(t, "check", filepath.Join(t.TempDir(), "missing"))
	if res.code != 2 {
		t.Fatalf("exit code = %d, want 2", res.code)
	}
	if !strings.HasPrefix(res.stderr, "lwfront: ") {
		t.Fatalf("unexpected stderr %q", res.stderr)
	}
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.lw", "x=1;y  =  x")
	clean := writeFile(t, dir, "clean.lw", "x = 1\n")

	res := runCLI(t, "fmt", "--check", dir)
	if res.code != 1 {
		t.Fatalf("fmt --check exit code = %d, want 1", res.code)
	}
	if strings.TrimSpace(res.stdout) != messy {
		t.Fatalf("fmt --check should list only %s, got:\n%s", messy, res.stdout)
	}

	res = runCLI(t, "fmt", "--stdout", messy)
	if res.code != 0 || res.stdout != "x = 1;\ny = x\n" {
		t.Fatalf("fmt --stdout = %d %q", res.code, res.stdout)
	}

	res = runCLI(t, "fmt", dir)
	if res.code != 0 {
		t.Fatalf("fmt exit code = %d, stderr: %s", res.code, res.stderr)
	}
	got, err := os.ReadFile(messy)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x = 1;\ny = x\n" {
		t.Fatalf("rewritten file = %q", got)
	}
	if res := runCLI(t, "fmt", "--check", messy, clean); res.code != 0 {
		t.Fatalf("formatted files should pass --check, got %d: %s", res.code, res.stdout)
	}
}

func TestFmtCommandParseError(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.lw", "x = ")
	res := runCLI(t, "fmt", "--format", "json", bad)
	if res.code != 1 {
		t.Fatalf("exit code = %d, want 1", res.code)
	}
	var payload []struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &payload); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if len(payload) != 1 || !strings.Contains(payload[0].Error, "parse error") {
		t.Fatalf("unexpected payload %+v", payload)
	}

	res = runCLI(t, "fmt", "--stdout", "--check", bad)
	if res.code != 2 || !strings.Contains(res.stderr, "--stdout cannot be used with --check") {
		t.Fatalf("expected flag conflict, got %d %q", res.code, res.stderr)
	}
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "version", "--format", "json")
	if res.code != 0 {
		t.Fatalf("exit code = %d", res.code)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(res.stdout), &info); err != nil {
		t.Fatalf("stdout is not JSON: %v", err)
	}
	if info.Version != version.Version().String() || info.GoVersion == "" {
		t.Fatalf("unexpected info %+v", info)
	}

	res = runCLI(t, "version", "--full")
	if res.code != 0 || !strings.HasPrefix(res.stdout, "lwfront ") || !strings.Contains(res.stdout, "go:") {
		t.Fatalf("unexpected banner %q", res.stdout)
	}

	if res := runCLI(t, "version", "--format", "yaml"); res.code != 2 {
		t.Fatalf("unknown format should fail, got %d", res.code)
	}
}

func TestTraceFlag(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "a.lw", "x = 1\n")
	tracePath := filepath.Join(dir, "trace.ndjson")

	res := runCLI(t, "--trace", tracePath, "parse", good)
	if res.code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("trace file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) == 0 || !json.Valid([]byte(lines[0])) {
		t.Fatalf("expected NDJSON events, got:\n%s", data)
	}
	if !strings.Contains(string(data), "lwfront parse") {
		t.Fatalf("root span missing from trace:\n%s", data)
	}
}
