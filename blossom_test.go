package blossom

import (
	"image/color"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left of", 9, 40, false},
		{"below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlap", Rect{5, 5, 10, 10}, true},
		{"touching edge", Rect{10, 0, 5, 5}, true},
		{"apart", Rect{20, 20, 5, 5}, false},
		{"contained", Rect{2, 2, 1, 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
		})
	}
}

func TestRectCenter(t *testing.T) {
	x, y := Rect{10, 20, 30, 40}.Center()
	if x != 25 || y != 40 {
		t.Errorf("Center() = (%v, %v), want (25, 40)", x, y)
	}
}

func TestRangeRandom(t *testing.T) {
	rng := testRand()
	r := Range{-0.15, 0.15}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < r.Min || v >= r.Max {
			t.Fatalf("Random() = %v outside [%v, %v)", v, r.Min, r.Max)
		}
	}
	if got := (Range{3, 3}).Random(rng); got != 3 {
		t.Errorf("degenerate Random() = %v, want 3", got)
	}
	// nil falls back to the global source
	if v := r.Random(nil); !r.Contains(v) {
		t.Errorf("Random(nil) = %v outside %v", v, r)
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.toRGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("toRGBA() = %v, want %v", got, want)
	}
	if got := (Color{2, -1, 0, 1}).toRGBA(); got.R != 255 || got.G != 0 {
		t.Errorf("out-of-range components not clamped: %v", got)
	}
}

func TestKindString(t *testing.T) {
	if KindConfettiStar.String() != "confetti-star" {
		t.Errorf("KindConfettiStar = %q", KindConfettiStar.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99) = %q", Kind(99).String())
	}
}

func TestPick(t *testing.T) {
	rng := testRand()
	if pick(rng, 0) != 0 || pick(rng, 1) != 0 {
		t.Error("pick over 0 or 1 items should return 0")
	}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		seen[pick(rng, 5)] = true
	}
	if len(seen) != 5 {
		t.Errorf("pick covered %d of 5 indices", len(seen))
	}
}
