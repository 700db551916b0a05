package blossom

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Default terminal cell size in simulated pixels, so that field speeds tuned
// for pixels look similar in a terminal.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// TermCanvas renders shapes into a tcell screen, one glyph per shape at the
// cell under the shape's hub. Colors are blended toward the background by
// the shape's effective alpha.
type TermCanvas struct {
	screen       tcell.Screen
	cellW, cellH float64
	background   colorful.Color
}

// NewTermCanvas wraps screen. Cell dimensions map simulated pixels to
// cells; non-positive values use the defaults. It returns nil for a nil
// screen.
func NewTermCanvas(screen tcell.Screen, cellW, cellH float64) *TermCanvas {
	if screen == nil {
		return nil
	}
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &TermCanvas{screen: screen, cellW: cellW, cellH: cellH}
}

// SetBackground sets the color faded shapes blend toward.
func (c *TermCanvas) SetBackground(bg Color) {
	c.background = colorful.Color{R: bg.R, G: bg.G, B: bg.B}
}

// Size returns the screen size in simulated pixels.
func (c *TermCanvas) Size() (int, int) {
	cols, rows := c.screen.Size()
	return int(float64(cols) * c.cellW), int(float64(rows) * c.cellH)
}

// Clear blanks the screen.
func (c *TermCanvas) Clear() {
	c.screen.Clear()
}

// Cell maps a simulated pixel position to a cell.
func (c *TermCanvas) Cell(x, y float64) (col, row int) {
	return int(math.Floor(x / c.cellW)), int(math.Floor(y / c.cellH))
}

// Fill puts the shape's glyph in the cell under its hub. Shapes outside the
// screen or fully transparent are skipped.
func (c *TermCanvas) Fill(s Shape) {
	a := clamp01(s.Color.A * s.Alpha)
	if a <= 0 {
		return
	}
	col, row := c.Cell(s.X, s.Y)
	cols, rows := c.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	fg := c.background.BlendRgb(colorful.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B}, a).Clamped()
	r, g, b := fg.RGB255()
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	c.screen.SetContent(col, row, glyph(s), nil, style)
}

// glyph picks a rune for the shape. A petal turned edge-on by its flip
// squash shows as a thin stroke.
func glyph(s Shape) rune {
	switch s.Kind {
	case KindPetal:
		if math.Abs(s.ScaleX) < 0.3 {
			return '|'
		}
		return '❀'
	case KindHeart, KindConfettiHeart:
		return '♥'
	case KindSparkle:
		if s.Size*math.Abs(s.ScaleX) < 4 {
			return '·'
		}
		return '✧'
	case KindConfettiCircle:
		return '•'
	case KindConfettiSquare:
		return '▪'
	case KindConfettiStar:
		return '✦'
	default:
		return '*'
	}
}
