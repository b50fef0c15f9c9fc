package ui

import (
	"strings"
	"testing"
	"time"

	"lwfront/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("checking", files, nil).(*progressModel)
}

func TestApplyEventTracksStatus(t *testing.T) {
	m := newModel("a.lw", "b.lw")
	m.applyEvent(driver.Event{File: "a.lw", Stage: driver.StageParse, Status: driver.StatusWorking})
	if m.items[0].status != "parsing" || m.items[0].finished {
		t.Errorf("a = %+v", m.items[0])
	}
	if p := m.percent(); p != 0.25 {
		t.Errorf("percent = %v, want 0.25", p)
	}

	m.applyEvent(driver.Event{File: "a.lw", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "b.lw", Stage: driver.StageCacheHit, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "unknown.lw", Stage: driver.StageParse, Status: driver.StatusDone})
	if m.items[0].status != "error" || m.items[1].status != "cached" {
		t.Errorf("items = %+v", m.items)
	}
	if m.errors != 1 || m.percent() != 1 {
		t.Errorf("errors = %d, percent = %v", m.errors, m.percent())
	}

	m.applyEvent(driver.Event{Stage: driver.StageCheck, Status: driver.StatusDone, Elapsed: 1500 * time.Microsecond})
	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: checking (2 files)") || !strings.Contains(view, "1 with errors") {
		t.Errorf("view = %q", view)
	}
}

func TestVisibleLimitsList(t *testing.T) {
	var files []string
	for i := range maxVisible + 5 {
		files = append(files, strings.Repeat("x", i+1)+".lw")
	}
	m := newModel(files...)
	m.applyEvent(driver.Event{File: files[0], Stage: driver.StageParse, Status: driver.StatusDone})
	vis := m.visible()
	if len(vis) != maxVisible {
		t.Fatalf("visible = %d", len(vis))
	}
	if vis[0].path == files[0] {
		t.Errorf("finished file listed before unfinished ones")
	}
	if !strings.Contains(m.View(), "... and 5 more") {
		t.Errorf("hidden summary missing")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lw", 20, "short.lw"},
		{"very/long/path/file.lw", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"日本語.lw", 5, "日..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
