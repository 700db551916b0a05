package blossom

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsRefresh is how often the widget redraws its text.
const statsRefresh = 500 * time.Millisecond

// StatsWidget displays FPS, TPS and the engine's particle counts. The text
// is re-rendered into a small internal image about twice a second.
type StatsWidget struct {
	engine  *Engine
	img     *ebiten.Image
	elapsed time.Duration
	text    string
}

// NewStatsWidget creates a widget reporting on e.
func NewStatsWidget(e *Engine) *StatsWidget {
	// 220x64 fits four lines of the debug font.
	return &StatsWidget{engine: e, img: ebiten.NewImage(220, 64), elapsed: statsRefresh}
}

// Update accumulates dt and refreshes the text when due.
func (w *StatsWidget) Update(dt time.Duration) {
	w.elapsed += dt
	if w.elapsed < statsRefresh {
		return
	}
	w.elapsed = 0

	s := w.engine.Stats()
	w.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\npetals: %d/%d\noverlay: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.Petals, s.Base, s.Overlay)

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, w.text)
}

// Text returns the most recently rendered text.
func (w *StatsWidget) Text() string {
	return w.text
}

// Draw composites the widget onto dst at (x, y).
func (w *StatsWidget) Draw(dst *ebiten.Image, x, y float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	dst.DrawImage(w.img, &op)
}
