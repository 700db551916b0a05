package blossom

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestTermCanvasSize(t *testing.T) {
	c := NewTermCanvas(newSimScreen(t, 80, 24), 0, 0)
	w, h := c.Size()
	if w != 80*DefaultCellWidth || h != 24*DefaultCellHeight {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, 80*DefaultCellWidth, 24*DefaultCellHeight)
	}
	if NewTermCanvas(nil, 8, 16) != nil {
		t.Error("nil screen should give a nil canvas")
	}
}

func TestTermCanvasFill(t *testing.T) {
	s := newSimScreen(t, 40, 10)
	c := NewTermCanvas(s, 8, 16)
	c.Fill(Shape{Kind: KindHeart, X: 20, Y: 40, Size: 10, ScaleX: 1, ScaleY: 1, Color: Color{1, 0, 0, 1}, Alpha: 1})

	r, _, style, _ := s.GetContent(2, 2)
	if r != '♥' {
		t.Errorf("rune = %q, want ♥", r)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("fg = %v, want pure red", fg)
	}
}

func TestTermCanvasBlendsTowardBackground(t *testing.T) {
	s := newSimScreen(t, 10, 10)
	c := NewTermCanvas(s, 8, 16)
	c.SetBackground(Color{0, 0, 0, 1})
	c.Fill(Shape{Kind: KindSparkle, X: 4, Y: 4, Size: 10, ScaleX: 1, ScaleY: 1, Color: ColorWhite, Alpha: 0.5})
	_, _, style, _ := s.GetContent(0, 0)
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	if r < 120 || r > 135 || r != g || g != b {
		t.Errorf("fg = (%d, %d, %d), want mid grey", r, g, b)
	}
}

func TestTermCanvasSkipsOffscreenAndTransparent(t *testing.T) {
	s := newSimScreen(t, 10, 10)
	c := NewTermCanvas(s, 8, 16)
	c.Fill(Shape{Kind: KindPetal, X: -5, Y: 10, Size: 10, ScaleX: 1, Color: ColorWhite, Alpha: 1})
	c.Fill(Shape{Kind: KindPetal, X: 8 * 10, Y: 10, Size: 10, ScaleX: 1, Color: ColorWhite, Alpha: 1})
	c.Fill(Shape{Kind: KindPetal, X: 12, Y: 10, Size: 10, ScaleX: 1, Color: ColorWhite, Alpha: 0})
	for x := 0; x < 10; x++ {
		if r, _, _, _ := s.GetContent(x, 0); r != ' ' {
			t.Errorf("cell %d = %q, want blank", x, r)
		}
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		s    Shape
		want rune
	}{
		{"petal", Shape{Kind: KindPetal, ScaleX: 1}, '❀'},
		{"petal edge-on", Shape{Kind: KindPetal, ScaleX: 0.1}, '|'},
		{"heart", Shape{Kind: KindHeart}, '♥'},
		{"confetti heart", Shape{Kind: KindConfettiHeart}, '♥'},
		{"small sparkle", Shape{Kind: KindSparkle, Size: 2, ScaleX: 1}, '·'},
		{"big sparkle", Shape{Kind: KindSparkle, Size: 10, ScaleX: 1}, '✧'},
		{"circle", Shape{Kind: KindConfettiCircle}, '•'},
		{"square", Shape{Kind: KindConfettiSquare}, '▪'},
		{"star", Shape{Kind: KindConfettiStar}, '✦'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := glyph(tt.s); got != tt.want {
				t.Errorf("glyph = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineOnTermCanvas(t *testing.T) {
	s := newSimScreen(t, 100, 40)
	c := NewTermCanvas(s, 0, 0)
	w, h := c.Size()
	e := New(Options{Config: DefaultConfig(), Width: w, Height: h, Surface: c, Rand: testRand()})
	e.Start()
	stepFrames(30, e.Update)
	e.Render()

	drawn := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 100; x++ {
			if r, _, _, _ := s.GetContent(x, y); r != ' ' {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("nothing drawn on the terminal")
	}
	if drawn > e.Field().Count() {
		t.Errorf("drawn %d cells, more than %d particles", drawn, e.Field().Count())
	}
}
