package greeting

import "github.com/charmbracelet/harmonica"

// Cursor glow radii.
const (
	glowRadius      = 12.0
	glowHoverRadius = 24.0
)

// cursorGlow is the soft light that trails the pointer and swells over
// interactive elements. Position and radius each follow their target on a
// critically damped spring.
type cursorGlow struct {
	spring harmonica.Spring

	x, y, r    float64
	vx, vy, vr float64
}

func newCursorGlow(fps int) cursorGlow {
	return cursorGlow{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8, 1),
		r:      glowRadius,
	}
}

// jump places the glow without animating, used for the first pointer sample.
func (g *cursorGlow) jump(x, y float64) {
	g.x, g.y = x, y
	g.vx, g.vy = 0, 0
}

// step moves the glow one frame toward the pointer.
func (g *cursorGlow) step(x, y float64, hovering bool) {
	target := glowRadius
	if hovering {
		target = glowHoverRadius
	}
	g.x, g.vx = g.spring.Update(g.x, g.vx, x)
	g.y, g.vy = g.spring.Update(g.y, g.vy, y)
	g.r, g.vr = g.spring.Update(g.r, g.vr, target)
}
