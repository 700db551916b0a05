package greeting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"malformed", "steps: [", "parse script"},
		{"empty", "steps: []", "no steps"},
		{"unknown action", "steps:\n  - {action: jump}", `unknown action "jump"`},
		{"unknown key", "steps:\n  - {action: key, key: tab}", `unknown key "tab"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptExpansion(t *testing.T) {
	in, err := LoadScript([]byte(`
steps:
  - {action: move, x: 0, y: 0}
  - {action: glide, toX: 40, toY: 80, frames: 4}
  - {action: click, x: 40, y: 80}
  - {action: wheel, wheel: -2}
  - {action: swipe, dx: 75}
  - {action: key, key: Escape}
  - {action: screenshot}
  - {action: wait, frames: 2}
`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	f := in.Poll()
	if !f.Moved || f.X != 0 || f.Y != 0 {
		t.Fatalf("move frame = %+v", f)
	}
	for i := 1; i <= 4; i++ {
		f = in.Poll()
		if !f.Moved || f.X != float64(10*i) || f.Y != float64(20*i) {
			t.Fatalf("glide frame %d = %+v", i, f)
		}
	}
	f = in.Poll()
	if !f.Clicked || f.Moved || f.X != 40 || f.Y != 80 {
		t.Fatalf("click frame = %+v", f)
	}
	if f = in.Poll(); f.WheelY != -2 || f.X != 40 {
		t.Fatalf("wheel frame = %+v", f)
	}
	if f = in.Poll(); f.Swipe != 75 {
		t.Fatalf("swipe frame = %+v", f)
	}
	if f = in.Poll(); !f.Pressed(KeyEscape) || f.Pressed(KeyLeft) {
		t.Fatalf("key frame = %+v", f)
	}
	if f = in.Poll(); f.Screenshot != "unlabeled" {
		t.Fatalf("screenshot frame = %+v", f)
	}
	for i := 0; i < 2; i++ {
		if in.Done() {
			t.Fatal("done before the wait finished")
		}
		if f = in.Poll(); f.Moved || f.Clicked {
			t.Fatalf("wait frame = %+v", f)
		}
	}
	if !in.Done() {
		t.Fatal("not done after the last step")
	}
	if f = in.Poll(); f.X != 40 || f.Y != 80 || f.Moved {
		t.Errorf("idle frame = %+v, want resting pointer at (40, 80)", f)
	}
}

func TestScriptGlideMinimumFrames(t *testing.T) {
	in, err := LoadScript([]byte("steps:\n  - {action: glide, toX: 10, toY: 10, frames: 1}"))
	if err != nil {
		t.Fatal(err)
	}
	first := in.Poll()
	second := in.Poll()
	if first.X != 5 || second.X != 10 || !in.Done() {
		t.Errorf("glide frames = %+v %+v", first, second)
	}
}

func TestLoadScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	if err := os.WriteFile(path, []byte("steps:\n  - {action: wait}"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := LoadScriptFile(path)
	if err != nil {
		t.Fatalf("LoadScriptFile: %v", err)
	}
	in.Poll()
	if !in.Done() {
		t.Error("single wait step not done after one frame")
	}

	if _, err := LoadScriptFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"escape", KeyEscape, true},
		{" LEFT ", KeyLeft, true},
		{"Stats", KeyStats, true},
		{"motion", KeyMotion, true},
		{"space", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
