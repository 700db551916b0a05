package blossom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	data := []byte(`
reducedMotion: true
field:
  baseCount: 60
  speedY: {min: 0.5, max: 2}
sparkles:
  trailInterval: 120ms
confetti:
  fall: {min: 1s, max: 1500ms}
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.ReducedMotion {
		t.Error("reducedMotion not applied")
	}
	if cfg.Field.BaseCount != 60 {
		t.Errorf("BaseCount = %d, want 60", cfg.Field.BaseCount)
	}
	if cfg.Field.NarrowBaseCount != 20 {
		t.Errorf("NarrowBaseCount = %d, want default 20", cfg.Field.NarrowBaseCount)
	}
	if cfg.Field.SpeedY != (Range{0.5, 2}) {
		t.Errorf("SpeedY = %v", cfg.Field.SpeedY)
	}
	if cfg.Sparkles.TrailInterval != 120*time.Millisecond {
		t.Errorf("TrailInterval = %v, want 120ms", cfg.Sparkles.TrailInterval)
	}
	if cfg.Sparkles.BurstCount != 12 {
		t.Errorf("BurstCount = %d, want default 12", cfg.Sparkles.BurstCount)
	}
	if cfg.Confetti.Fall != (DurationRange{time.Second, 1500 * time.Millisecond}) {
		t.Errorf("Fall = %v", cfg.Confetti.Fall)
	}
}

func TestParseConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"inverted range", "field:\n  size: {min: 10, max: 2}\n", "field.size"},
		{"bad hex", "field:\n  palette: [{hex: \"#zz0000\"}]\n", "field.palette"},
		{"empty palette", "confetti:\n  palette: []\n", "confetti.palette: empty"},
		{"heart chance", "field:\n  heartChance: 1.5\n", "heartChance"},
		{"threshold", "clicks:\n  threshold: 0\n", "threshold"},
		{"malformed", "field: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Field.Breakpoint = 0
	cfg.Hearts.Duration = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"breakpoint", "hearts: duration"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoadConfigAndMarshal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clicks.Confetti = 99
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "blossom.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Clicks.Confetti != 99 {
		t.Errorf("Clicks.Confetti = %d, want 99", loaded.Clicks.Confetti)
	}
	if loaded.Sparkles.TrailInterval != 80*time.Millisecond {
		t.Errorf("TrailInterval = %v, want 80ms", loaded.Sparkles.TrailInterval)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSwatchColor(t *testing.T) {
	tests := []struct {
		s    Swatch
		want Color
	}{
		{Swatch{Hex: "#ffffff"}, Color{1, 1, 1, 1}},
		{Swatch{Hex: "#000000", Alpha: 0.5}, Color{0, 0, 0, 0.5}},
		{Swatch{Hex: "#ff0000", Alpha: 3}, Color{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		got, err := tt.s.Color()
		if err != nil {
			t.Fatalf("%v: %v", tt.s, err)
		}
		assertNear(t, tt.s.Hex+" R", got.R, tt.want.R)
		assertNear(t, tt.s.Hex+" G", got.G, tt.want.G)
		assertNear(t, tt.s.Hex+" B", got.B, tt.want.B)
		assertNear(t, tt.s.Hex+" A", got.A, tt.want.A)
	}
	if _, err := (Swatch{Hex: "rose"}).Color(); err == nil {
		t.Error("expected error for non-hex swatch")
	}
}

func TestBaseCountFor(t *testing.T) {
	f := DefaultConfig().Field
	if got := f.BaseCountFor(767); got != 20 {
		t.Errorf("BaseCountFor(767) = %d, want 20", got)
	}
	if got := f.BaseCountFor(768); got != 40 {
		t.Errorf("BaseCountFor(768) = %d, want 40", got)
	}
}

func TestDurationRangeRandom(t *testing.T) {
	r := DurationRange{2 * time.Second, 4 * time.Second}
	rng := testRand()
	for i := 0; i < 100; i++ {
		d := r.Random(rng)
		if d < r.Min || d >= r.Max {
			t.Fatalf("Random() = %v outside [%v, %v)", d, r.Min, r.Max)
		}
	}
	if got := (DurationRange{time.Second, time.Second}).Random(rng); got != time.Second {
		t.Errorf("degenerate Random() = %v, want 1s", got)
	}
}

func TestMustColorsFallsBackToWhite(t *testing.T) {
	cs := mustColors(Palette{{Hex: "nope"}})
	if len(cs) != 1 || cs[0] != ColorWhite {
		t.Errorf("mustColors = %v, want [white]", cs)
	}
}
