package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	cfgPath := writeFile(t, root, configFileName, "[parse]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil || !ok {
		t.Fatalf("findConfig: ok=%v err=%v", ok, err)
	}
	want, _ := filepath.Abs(cfgPath)
	if got != want {
		t.Fatalf("findConfig = %q, want %q", got, want)
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"full", `
[diagnostics]
max = 10
color = "off"
format = "short"

[parse]
jobs = 3

[cache]
enabled = true
dir = "/tmp/lw"

[trace]
level = "phase"
output = "-"
`, ""},
		{"empty", "", ""},
		{"unknown key", "[parse]\nthreads = 4\n", "unknown keys: parse.threads"},
		{"bad color", "[diagnostics]\ncolor = \"rainbow\"\n", "diagnostics.color"},
		{"bad format", "[diagnostics]\nformat = \"xml\"\n", "diagnostics.format"},
		{"negative jobs", "[parse]\njobs = -1\n", "parse.jobs"},
		{"syntax", "[parse\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), configFileName, tt.data)
			cfg, err := loadConfig(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig: %v", err)
			}
			if tt.name == "full" {
				if cfg.Diagnostics.Max != 10 || cfg.Parse.Jobs != 3 || !cfg.Cache.Enabled || cfg.Trace.Level != "phase" {
					t.Fatalf("unexpected config %+v", cfg)
				}
			}
		})
	}
}

func TestConfigPrecedence(t *testing.T) {
	dir := checkDir(t)
	cfgPath := writeFile(t, t.TempDir(), configFileName, "[diagnostics]\nformat = \"short\"\n")

	// формат из конфига
	res := runCLI(t, "--config", cfgPath, "check", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "error SYN2002 ") {
		t.Fatalf("config format not applied:\n%s", res.stdout)
	}

	// явный флаг сильнее конфига
	res = runCLI(t, "--config", cfgPath, "check", "--format", "json", dir)
	if res.code != 1 {
		t.Fatalf("exit code = %d, stderr: %s", res.code, res.stderr)
	}
	if !json.Valid([]byte(res.stdout)) {
		t.Fatalf("flag did not override config:\n%s", res.stdout)
	}
}

func TestBrokenConfigFailsCommand(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), configFileName, "[parse]\nthreads = 4\n")
	res := runCLI(t, "--config", cfgPath, "version")
	if res.code != 2 || !strings.Contains(res.stderr, "unknown keys") {
		t.Fatalf("expected config error, got %d %q", res.code, res.stderr)
	}
}
